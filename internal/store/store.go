// Package store persists accounts, artworks, exhibitions, orders and payment
// transactions with gorm. Every state change that depends on a pre-state is a
// single conditional UPDATE/DELETE; callers learn whether they won through the
// returned bool.
package store

import (
	"context"
	"errors"
	"fmt"

	"chitrakalakar-app/internal/domain"
	"chitrakalakar-app/internal/domain/billing"
	"chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&users.Account{},
		&works.Artwork{},
		&exhibitions.Exhibition{},
		&orders.Order{},
		&billing.PaymentTransaction{},
	}
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(Models()...)
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}

// changed runs a conditional write and reports whether any row matched.
func changed(res *gorm.DB) (bool, error) {
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// mustChange is changed for writes whose only failure mode is a missing row.
func mustChange(res *gorm.DB, what string) error {
	ok, err := changed(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"chitrakalakar-app/internal/domain/users"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AccountInserter interface {
	InsertAccountIfAbsent(ctx context.Context, a *users.Account) (bool, error)
}

// EnsureDefaultAdmin creates the platform admin once. Later runs, and races
// between instances, leave the existing account untouched.
func EnsureDefaultAdmin(ctx context.Context, st AccountInserter, email, password string, log *zap.Logger) error {
	if password == "" {
		log.Warn("ADMIN_PASSWORD not set, skipping default admin bootstrap")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin, err := users.NewAccount("Admin", email, string(hash), users.RoleAdmin, time.Now())
	if err != nil {
		return err
	}
	created, err := st.InsertAccountIfAbsent(ctx, admin)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		log.Info("default admin created", zap.String("email", admin.Email))
	}
	return nil
}

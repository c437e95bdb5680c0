package store

import (
	"context"
	"strings"

	"chitrakalakar-app/internal/domain/users"

	"gorm.io/gorm/clause"
)

func (s *Store) CreateAccount(ctx context.Context, a *users.Account) error {
	return s.db.WithContext(ctx).Create(a).Error
}

// InsertAccountIfAbsent inserts a unless an account with the same email
// exists. It reports whether the row was inserted.
func (s *Store) InsertAccountIfAbsent(ctx context.Context, a *users.Account) (bool, error) {
	return changed(s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(a))
}

func (s *Store) FindAccount(ctx context.Context, id string) (*users.Account, error) {
	var a users.Account
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFound(err, "account "+id)
	}
	return &a, nil
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*users.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a users.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, notFound(err, "account "+email)
	}
	return &a, nil
}

type AccountFilter struct {
	Role       users.Role
	IsApproved *bool
	IsActive   *bool
	IsFeatured *bool
	Limit      int
}

func (s *Store) ListAccounts(ctx context.Context, f AccountFilter) ([]users.Account, error) {
	q := s.db.WithContext(ctx).Model(&users.Account{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsApproved != nil {
		q = q.Where("is_approved = ?", *f.IsApproved)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []users.Account
	err := q.Order("joined_at DESC").Find(&out).Error
	return out, err
}

// SetArtistApproval writes is_approved on an artist account. Rejection only
// matches artists still pending review. It reports false when no matching
// artist exists.
func (s *Store) SetArtistApproval(ctx context.Context, artistID string, approved bool) (bool, error) {
	q := s.db.WithContext(ctx).Model(&users.Account{}).
		Where("id = ? AND role = ?", artistID, users.RoleArtist)
	if !approved {
		q = q.Where("is_approved = ?", false)
	}
	return changed(q.Update("is_approved", approved))
}

func (s *Store) SetArtistFeatured(ctx context.Context, artistID string, featured bool) (bool, error) {
	return changed(s.db.WithContext(ctx).Model(&users.Account{}).
		Where("id = ? AND role = ? AND is_approved = ?", artistID, users.RoleArtist, true).
		Update("is_featured", featured))
}

// SetAccountActive flips is_active only if it still equals from.
func (s *Store) SetAccountActive(ctx context.Context, id string, from, to bool) (bool, error) {
	return changed(s.db.WithContext(ctx).Model(&users.Account{}).
		Where("id = ? AND is_active = ?", id, from).
		Update("is_active", to))
}

func (s *Store) GrantMembership(ctx context.Context, userID string) error {
	return mustChange(s.db.WithContext(ctx).Model(&users.Account{}).
		Where("id = ?", userID).
		Update("is_member", true), "account "+userID)
}

func (s *Store) GrantArtistAnnual(ctx context.Context, userID string) error {
	return mustChange(s.db.WithContext(ctx).Model(&users.Account{}).
		Where("id = ? AND role = ?", userID, users.RoleArtist).
		Update("annual_fee_paid", true), "artist "+userID)
}

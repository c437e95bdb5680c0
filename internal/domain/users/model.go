package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer    Role = "customer"
	RoleArtist      Role = "artist"
	RoleInstitution Role = "institution"
	RoleAdmin       Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleArtist, RoleInstitution, RoleAdmin:
		return r, true
	case "user", "":
		// legacy signups sent "user" for plain customers
		return RoleCustomer, true
	}
	return "", false
}

type Account struct {
	ID       string `gorm:"type:varchar(36);primaryKey"`
	Name     string `gorm:"not null"`
	Email    string `gorm:"not null;uniqueIndex:idx_accounts_email"`
	Password string `gorm:"not null"`
	Role     Role   `gorm:"type:varchar(20);not null;index"`

	Location *string
	Bio      *string
	Category *string
	Avatar   *string

	// admin-controlled flags
	IsApproved bool `gorm:"not null;default:false;index"`
	IsActive   bool `gorm:"not null;default:true"`
	IsFeatured bool `gorm:"not null;default:false"`

	// entitlements granted by settled payments
	IsMember      bool `gorm:"not null;default:false"`
	AnnualFeePaid bool `gorm:"not null;default:false"`

	JoinedAt  time.Time
	UpdatedAt time.Time
}

// NewAccount builds an account ready for insertion. Artists start unapproved
// and wait for admin review; every other role is approved at creation.
func NewAccount(name, email, passwordHash string, role Role, now time.Time) (*Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	switch role {
	case RoleCustomer, RoleArtist, RoleInstitution, RoleAdmin:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return &Account{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Email:      email,
		Password:   passwordHash,
		Role:       role,
		IsApproved: role != RoleArtist,
		IsActive:   true,
		JoinedAt:   now.UTC(),
	}, nil
}

// CanActAsArtist reports whether the account may use artist-only commands.
func (a Account) CanActAsArtist() bool {
	return a.Role == RoleArtist && a.IsApproved && a.IsActive
}

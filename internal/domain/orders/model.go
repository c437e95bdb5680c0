package orders

import (
	"fmt"
	"time"

	"chitrakalakar-app/internal/domain"
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusInProgress      Status = "in_progress"
	StatusPendingApproval Status = "pending_approval"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
)

// rank orders the forward path; cancelled sits outside it.
var rank = map[Status]int{
	StatusPending:         0,
	StatusInProgress:      1,
	StatusPendingApproval: 2,
	StatusCompleted:       3,
}

type Order struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderNumber string `gorm:"not null;uniqueIndex;<-:create" json:"order_number"`

	ArtistID     string  `gorm:"type:varchar(36);not null;index" json:"artist_id"`
	ArtworkID    *string `gorm:"type:varchar(36)" json:"artwork_id,omitempty"`
	ArtworkTitle string  `json:"artwork_title"`

	CustomerID    string `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`

	// minor currency units; the split is frozen at creation
	Amount         int64 `gorm:"not null;<-:create" json:"amount"`
	CommissionFee  int64 `gorm:"not null;<-:create" json:"commission_fee"`
	ArtistReceives int64 `gorm:"not null;<-:create" json:"artist_receives"`

	Status Status  `gorm:"type:varchar(20);not null;index" json:"status"`
	IsPaid bool    `gorm:"not null;default:false" json:"is_paid"`
	Notes  *string `json:"notes,omitempty"`

	StartDate time.Time  `json:"start_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Split computes the commission for amount at rateBPS basis points, rounding
// half up, and the remainder paid to the artist.
func Split(amount int64, rateBPS int64) (commission, artistReceives int64, err error) {
	if amount <= 0 {
		return 0, 0, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if rateBPS < 0 || rateBPS > 10000 {
		return 0, 0, fmt.Errorf("%w: commission rate %d bps out of range", domain.ErrInvalidInput, rateBPS)
	}
	commission = (amount*rateBPS + 5000) / 10000
	return commission, amount - commission, nil
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsArtistTarget reports whether an artist may request s at all.
func IsArtistTarget(s Status) bool {
	switch s {
	case StatusInProgress, StatusPendingApproval, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CheckTransition validates from -> to. Orders only move forward along
// pending < in_progress < pending_approval < completed; cancelled is
// reachable from any non-terminal status. Terminal statuses accept nothing.
func CheckTransition(from, to Status) error {
	if !IsArtistTarget(to) {
		return fmt.Errorf("%w: %q is not a settable order status", domain.ErrInvalidTransition, to)
	}
	if from.Terminal() {
		return fmt.Errorf("%w: order is already %s", domain.ErrInvalidTransition, from)
	}
	if to == StatusCancelled {
		return nil
	}
	if rank[to] <= rank[from] {
		return fmt.Errorf("%w: %s -> %s moves backwards", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// Balanced holds for every order whose split was produced by Split.
func (o Order) Balanced() bool {
	return o.Amount == o.CommissionFee+o.ArtistReceives
}

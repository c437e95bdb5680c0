package exhibitions

import (
	"fmt"
	"time"

	"chitrakalakar-app/internal/domain"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

const Day = 24 * time.Hour

type Exhibition struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	ArtistID    string  `gorm:"type:varchar(36);not null;index" json:"artist_id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description,omitempty"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// weak references, resolved when read
	ArtworkIDs []string `gorm:"type:text;serializer:json" json:"artwork_ids"`

	Status     Status `gorm:"type:varchar(20);not null;index" json:"status"`
	IsApproved bool   `gorm:"not null;default:false;index" json:"is_approved"`
	IsPaid     bool   `gorm:"not null;default:false" json:"is_paid"`

	DaysPaid int   `gorm:"not null;<-:create" json:"days_paid"`
	Fees     int64 `gorm:"not null;<-:create" json:"fees"`
	Views    int64 `gorm:"not null;default:0" json:"views"`

	ArchivedAt       *time.Time `json:"archived_at,omitempty"`
	ArchiveExpiresAt *time.Time `json:"archive_expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeeSchedule prices display time as a baseline fee for a baseline number of
// days. Fees are proportional and rounded half up to the minor unit once, at
// creation.
type FeeSchedule struct {
	BaseFee  int64
	BaseDays int
}

func (f FeeSchedule) FeesFor(daysPaid int) (int64, error) {
	if daysPaid < 1 {
		return 0, fmt.Errorf("%w: days_paid must be at least 1", domain.ErrInvalidInput)
	}
	if f.BaseDays < 1 || f.BaseFee < 0 {
		return 0, fmt.Errorf("%w: bad fee schedule %d/%d days", domain.ErrInvalidInput, f.BaseFee, f.BaseDays)
	}
	num := int64(daysPaid) * f.BaseFee
	den := int64(f.BaseDays)
	return (2*num + den) / (2 * den), nil
}

// ArchiveWindow returns the archive timestamps for an exhibition archived at
// now: the free retention equals the paid display duration.
func ArchiveWindow(now time.Time, daysPaid int) (archivedAt, expiresAt time.Time) {
	archivedAt = now.UTC()
	return archivedAt, archivedAt.Add(time.Duration(daysPaid) * Day)
}

func CanArchive(s Status) bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// IsArchiveVisible reports whether an archived exhibition may be listed
// publicly at now. Records archived before expiry tracking stay visible.
func (e Exhibition) IsArchiveVisible(now time.Time) bool {
	if e.Status != StatusArchived {
		return false
	}
	if e.ArchiveExpiresAt == nil {
		return true
	}
	return now.Before(*e.ArchiveExpiresAt)
}

// ShouldActivate: approved, paid and started.
func (e Exhibition) ShouldActivate(now time.Time) bool {
	return e.Status == StatusUpcoming && e.IsApproved && e.IsPaid && !now.Before(e.StartDate)
}

func (e Exhibition) ShouldComplete(now time.Time) bool {
	return e.Status == StatusActive && now.After(e.EndDate)
}

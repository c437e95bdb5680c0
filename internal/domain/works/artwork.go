package works

import (
	"time"
)

type Artwork struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ArtistID string `gorm:"type:varchar(36);not null;index" json:"artist_id"`

	Title       string  `gorm:"not null" json:"title"`
	Category    string  `gorm:"index" json:"category"`
	Price       int64   `gorm:"not null;default:0" json:"price"`
	Image       string  `json:"image"`
	Description *string `json:"description,omitempty"`

	IsApproved      bool  `gorm:"not null;default:false;index" json:"is_approved"`
	IsForExhibition bool  `gorm:"not null;default:false" json:"is_for_exhibition"`
	IsSold          bool  `gorm:"not null;default:false" json:"is_sold"`
	Views           int64 `gorm:"not null;default:0" json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PubliclyVisible is the approval gate for artworks.
func (a Artwork) PubliclyVisible() bool {
	return a.IsApproved
}

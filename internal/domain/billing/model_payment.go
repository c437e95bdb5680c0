package billing

import (
	"time"
)

type OrderType string

const (
	OrderMembership      OrderType = "membership"
	OrderArtistAnnual    OrderType = "artist_annual"
	OrderExhibition      OrderType = "exhibition"
	OrderArtworkPurchase OrderType = "artwork_purchase"
	OrderCustom          OrderType = "custom_order"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderMembership, OrderArtistAnnual, OrderExhibition, OrderArtworkPurchase, OrderCustom:
		return true
	}
	return false
}

// NeedsEntity is true for order types that pay for a specific record rather
// than an account entitlement.
func (t OrderType) NeedsEntity() bool {
	return t == OrderExhibition || t == OrderArtworkPurchase || t == OrderCustom
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentTransaction is the local record of a provider checkout session.
type PaymentTransaction struct {
	ID            uint          `gorm:"primaryKey" json:"-"`
	SessionID     string        `gorm:"not null;uniqueIndex" json:"session_id"`
	OrderType     OrderType     `gorm:"type:varchar(32);not null;index" json:"order_type"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);not null;index" json:"payment_status"`

	UserID   string  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	EntityID *string `gorm:"type:varchar(36)" json:"entity_id,omitempty"`

	Amount   int64             `gorm:"not null" json:"amount"`
	Currency string            `gorm:"type:varchar(8);not null" json:"currency"`
	Metadata map[string]string `gorm:"type:text;serializer:json" json:"metadata,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

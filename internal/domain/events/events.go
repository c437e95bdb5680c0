package events

import (
	"context"
	"time"
)

const (
	ArtistApproved      = "artist.approved"
	ArtistRejected      = "artist.rejected"
	ArtworkSubmitted    = "artwork.submitted"
	ArtworkApproved     = "artwork.approved"
	ArtworkDeleted      = "artwork.deleted"
	ExhibitionCreated   = "exhibition.created"
	ExhibitionApproved  = "exhibition.approved"
	ExhibitionDeleted   = "exhibition.deleted"
	ExhibitionArchived  = "exhibition.archived"
	ExhibitionActivated = "exhibition.activated"
	ExhibitionCompleted = "exhibition.completed"
	OrderCreated        = "order.created"
	OrderStatusChanged  = "order.status_changed"
	PaymentSettled      = "payment.settled"
)

// Event is a lifecycle notification. Key groups events of one aggregate.
type Event struct {
	Type       string            `json:"type"`
	Key        string            `json:"key"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

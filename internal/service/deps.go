package service

import (
	"context"
	"time"

	"chitrakalakar-app/internal/domain/events"
	"chitrakalakar-app/internal/infra/metrics"

	"go.uber.org/zap"
)

// Deps carries what every core service needs besides its store.
type Deps struct {
	Events  events.Publisher
	Metrics *metrics.Metrics
	Log     *zap.Logger
	// Timeout bounds each store or provider call. Zero means unbounded.
	Timeout time.Duration
	Now     func() time.Time
}

func (d Deps) WithDefaults() Deps {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Emit publishes e and logs a delivery failure. Lifecycle events never fail
// the command that produced them.
func (d Deps) Emit(ctx context.Context, typ, key string, attrs map[string]string) {
	e := events.Event{Type: typ, Key: key, OccurredAt: d.Now().UTC(), Attributes: attrs}
	if err := d.Events.Publish(ctx, e); err != nil {
		d.Log.Warn("event publish failed", zap.String("type", typ), zap.String("key", key), zap.Error(err))
	}
}

package domain

import (
	"context"
	"time"
)

// Bound limits a collaborator call to d. A non-positive d leaves ctx as is.
func Bound(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Call runs fn under Bound(ctx, d) and reports an expired deadline as
// ErrTimeout.
func Call[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	cctx, cancel := Bound(ctx, d)
	defer cancel()
	v, err := fn(cctx)
	return v, AsTimeout(cctx, err)
}

// Do is Call for collaborators that only return an error.
func Do(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	_, err := Call(ctx, d, func(c context.Context) (struct{}, error) {
		return struct{}{}, fn(c)
	})
	return err
}

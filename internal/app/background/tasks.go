package background

import (
	"context"
	"time"

	"chitrakalakar-app/internal/service/exhibitions"

	"go.uber.org/zap"
)

type Advancer interface {
	Advance(ctx context.Context) (exhibitions.AdvanceReport, error)
}

type BackgroundTasks struct {
	Schedule Advancer
	Interval time.Duration
	Log      *zap.Logger
}

func NewBackgroundTasks(schedule Advancer, interval time.Duration, log *zap.Logger) *BackgroundTasks {
	if interval <= 0 {
		interval = time.Minute
	}
	return &BackgroundTasks{Schedule: schedule, Interval: interval, Log: log}
}

// StartAll launches the periodic jobs. They stop when ctx is cancelled.
func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startExhibitionSchedule(ctx)
}

func (bt *BackgroundTasks) startExhibitionSchedule(ctx context.Context) {
	ticker := time.NewTicker(bt.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.advanceOnce(ctx)
		}
	}
}

func (bt *BackgroundTasks) advanceOnce(ctx context.Context) {
	rep, err := bt.Schedule.Advance(ctx)
	if err != nil {
		bt.Log.Error("exhibition schedule sweep failed", zap.Error(err))
	}
	if rep.Activated > 0 || rep.Completed > 0 {
		bt.Log.Info("exhibition schedule advanced",
			zap.Int("activated", rep.Activated), zap.Int("completed", rep.Completed))
	}
}

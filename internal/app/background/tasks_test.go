package background

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"chitrakalakar-app/internal/service/exhibitions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingAdvancer struct{ calls atomic.Int32 }

func (a *countingAdvancer) Advance(context.Context) (exhibitions.AdvanceReport, error) {
	a.calls.Add(1)
	return exhibitions.AdvanceReport{Activated: 1}, nil
}

func TestStartAll_TicksUntilCancelled(t *testing.T) {
	adv := &countingAdvancer{}
	bt := NewBackgroundTasks(adv, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	bt.StartAll(ctx)

	assert.Eventually(t, func() bool { return adv.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	time.Sleep(20 * time.Millisecond)
	settled := adv.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, adv.calls.Load())
}

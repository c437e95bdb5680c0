package kafka

import (
	"context"
	"encoding/json"
	"time"

	"chitrakalakar-app/internal/domain/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher writes lifecycle events as JSON. Writes are asynchronous; delivery
// failures are only logged, never surfaced to the command that emitted them.
type Publisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewPublisher(brokers []string, topic string, log *zap.Logger) *Publisher {
	p := &Publisher{log: log}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion:   p.completed,
	}
	return p
}

func (p *Publisher) Publish(ctx context.Context, e events.Event) error {
	v, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Key),
		Value: v,
		Time:  e.OccurredAt,
	})
}

func (p *Publisher) completed(msgs []kafka.Message, err error) {
	if err == nil {
		return
	}
	p.log.Error("failed to publish lifecycle events", zap.Int("count", len(msgs)), zap.Error(err))
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

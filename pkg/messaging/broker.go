package messaging

import (
	"context"
	"time"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope every lifecycle event travels in.
type Message struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Actor      string      `json:"actor"`
	Payload    interface{} `json:"payload"`
}

// NopBroker drops everything. Used when no broker is configured.
type NopBroker struct{}

func NewNopBroker() Broker {
	return NopBroker{}
}

func (NopBroker) Publish(context.Context, string, interface{}) error {
	return nil
}

func (NopBroker) Subscribe(ctx context.Context, _ string) (<-chan []byte, error) {
	ch := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (NopBroker) Close() error {
	return nil
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	interfaces "github.com/sheikh-saqib/transaction-event-ledger/internal/interfaces"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes ledger messages as JSON to a single topic.
type Publisher struct {
	writer messageWriter
}

// NewPublisher returns a Publisher writing to topic on brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func newMessage(key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encoding %T: %w", event, err)
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(fmt.Sprintf("%T", event))},
		},
	}, nil
}

// Publish sends msgs in a single write. Messages for one client share a key
// and so land on the same partition.
func (p *Publisher) Publish(ctx context.Context, msgs ...interfaces.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		msg, err := newMessage(m.Key, m.Event)
		if err != nil {
			return err
		}
		batch = append(batch, msg)
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("publishing %d messages: %w", len(batch), err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	interfaces "github.com/sheikh-saqib/transaction-event-ledger/internal/interfaces"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	writes int
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.writes++
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	snap := events.AccountSnapshot{
		ID:        "id-1",
		RunID:     "run-1",
		ClientID:  4,
		Available: decimal.RequireFromString("1.5"),
		Held:      decimal.Zero,
		Total:     decimal.RequireFromString("1.5"),
		TakenAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), interfaces.Message{Key: "4", Event: snap}))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "4", string(msg.Key))
	assert.Equal(t, "events.AccountSnapshot", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, "1.5", decoded["available"])
	assert.EqualValues(t, 4, decoded["client_id"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), interfaces.Message{Key: "1", Event: events.EventRejected{Reason: "not_disputed"}})
	assert.ErrorIs(t, err, boom)
}

func TestPublishRejectsUnencodable(t *testing.T) {
	p := &Publisher{writer: &fakeWriter{}}

	err := p.Publish(context.Background(), interfaces.Message{Key: "1", Event: make(chan int)})
	assert.Error(t, err)
}

func TestPublishWritesBatchOnce(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	msgs := make([]interfaces.Message, 0, 100)
	for i := range 100 {
		msgs = append(msgs, interfaces.Message{
			Key:   "1",
			Event: events.EventRejected{TransactionID: uint32(i), Reason: "not_disputed"},
		})
	}

	require.NoError(t, p.Publish(context.Background(), msgs...))
	assert.Equal(t, 1, w.writes)
	assert.Len(t, w.msgs, 100)
}

func TestPublishEmptyIsNoop(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	require.NoError(t, p.Publish(context.Background()))
	assert.Zero(t, w.writes)
}

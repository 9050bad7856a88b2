package ledger

import (
	"errors"
	"iter"
	"testing"

	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op     string
	tx     models.TransactionID
	client models.ClientID
	amount string
}

// recordingStore records every call and returns err.
type recordingStore struct {
	calls []call
	err   error
}

func (r *recordingStore) Deposit(tx models.TransactionID, client models.ClientID, amount decimal.Decimal) error {
	r.calls = append(r.calls, call{"deposit", tx, client, amount.String()})
	return r.err
}

func (r *recordingStore) Withdrawal(tx models.TransactionID, client models.ClientID, amount decimal.Decimal) error {
	r.calls = append(r.calls, call{"withdrawal", tx, client, amount.String()})
	return r.err
}

func (r *recordingStore) Dispute(tx models.TransactionID, client models.ClientID) error {
	r.calls = append(r.calls, call{op: "dispute", tx: tx, client: client})
	return r.err
}

func (r *recordingStore) Resolve(tx models.TransactionID, client models.ClientID) error {
	r.calls = append(r.calls, call{op: "resolve", tx: tx, client: client})
	return r.err
}

func (r *recordingStore) Chargeback(tx models.TransactionID, client models.ClientID) error {
	r.calls = append(r.calls, call{op: "chargeback", tx: tx, client: client})
	return r.err
}

func (r *recordingStore) Snapshot() iter.Seq[models.ClientSummary] {
	return func(func(models.ClientSummary) bool) {}
}

func TestApplyRoutesEachKind(t *testing.T) {
	tests := []struct {
		event models.Event
		want  call
	}{
		{models.Deposit{Tx: 1, Owner: 2, Amount: decimal.RequireFromString("3.5")}, call{"deposit", 1, 2, "3.5"}},
		{models.Withdrawal{Tx: 4, Owner: 5, Amount: decimal.RequireFromString("6")}, call{"withdrawal", 4, 5, "6"}},
		{models.Dispute{Tx: 7, Owner: 8}, call{op: "dispute", tx: 7, client: 8}},
		{models.Resolve{Tx: 9, Owner: 10}, call{op: "resolve", tx: 9, client: 10}},
		{models.Chargeback{Tx: 11, Owner: 12}, call{op: "chargeback", tx: 11, client: 12}},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.Kind()), func(t *testing.T) {
			store := &recordingStore{}
			require.NoError(t, Apply(store, tt.event))
			assert.Equal(t, []call{tt.want}, store.calls)
		})
	}
}

func TestApplyReturnsStoreErrorUnchanged(t *testing.T) {
	want := models.NotDisputed(1, 1)
	store := &recordingStore{err: want}

	err := Apply(store, models.Resolve{Tx: 1, Owner: 1})
	assert.Same(t, want, err)
}

func TestApplyRejectsNilEvent(t *testing.T) {
	store := &recordingStore{}

	err := Apply(store, nil)
	assert.True(t, errors.Is(err, models.ErrUnknownEvent))
	assert.Empty(t, store.calls)
}

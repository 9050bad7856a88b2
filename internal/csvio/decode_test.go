package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, input string) ([]models.Event, error) {
	t.Helper()

	d := NewDecoder(strings.NewReader(input))
	var out []models.Event
	for {
		ev, err := d.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
}

func TestDecodeAllKinds(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
deposit,   2, 2, 2.0
withdrawal, 1, 4, 1.5
dispute, 1, 1,
resolve, 1, 1
chargeback, 2, 2, 
`
	events, err := decodeAll(t, input)
	require.NoError(t, err)
	require.Len(t, events, 6)

	dep, ok := events[0].(models.Deposit)
	require.True(t, ok)
	assert.Equal(t, models.TransactionID(1), dep.Tx)
	assert.Equal(t, models.ClientID(1), dep.Owner)
	assert.True(t, dep.Amount.Equal(decimal.RequireFromString("1")))

	w, ok := events[2].(models.Withdrawal)
	require.True(t, ok)
	assert.True(t, w.Amount.Equal(decimal.RequireFromString("1.5")))

	assert.Equal(t, models.Dispute{Tx: 1, Owner: 1}, events[3])
	assert.Equal(t, models.Resolve{Tx: 1, Owner: 1}, events[4])
	assert.Equal(t, models.Chargeback{Tx: 2, Owner: 2}, events[5])
}

func TestDecodeColumnOrderFromHeader(t *testing.T) {
	events, err := decodeAll(t, "client,tx,amount,type\n3,7,0.1234,deposit\n")
	require.NoError(t, err)
	require.Len(t, events, 1)

	dep := events[0].(models.Deposit)
	assert.Equal(t, models.ClientID(3), dep.Owner)
	assert.Equal(t, models.TransactionID(7), dep.Tx)
}

func TestDecodeMissingAmount(t *testing.T) {
	_, err := decodeAll(t, "type,client,tx,amount\ndeposit,1,1,1\nwithdrawal,1,2,\n")

	require.ErrorIs(t, err, models.ErrMissingAmount)
	var derr *models.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 3, derr.Line)
}

func TestDecodeUnknownType(t *testing.T) {
	events, err := decodeAll(t, "type,client,tx,amount\ndeposit,1,1,1\nrefund,1,2,1\ndeposit,1,3,1\n")

	require.ErrorIs(t, err, models.ErrUnknownEventType)
	assert.Len(t, events, 1, "decoding stops at the bad row")
	assert.Contains(t, err.Error(), `"refund"`)
}

func TestDecodeInvalidFields(t *testing.T) {
	for name, row := range map[string]string{
		"client overflows u16": "deposit,70000,1,1",
		"negative tx":          "deposit,1,-1,1",
		"amount not decimal":   "deposit,1,1,ten",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := decodeAll(t, "type,client,tx,amount\n"+row+"\n")

			var derr *models.DecodeError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, 2, derr.Line)
		})
	}
}

func TestDecodeHeaderErrors(t *testing.T) {
	_, err := decodeAll(t, "")
	var derr *models.DecodeError
	require.ErrorAs(t, err, &derr)

	_, err = decodeAll(t, "type,client,amount\ndeposit,1,1\n")
	require.ErrorAs(t, err, &derr)
	assert.Contains(t, err.Error(), `"tx"`)
}

func TestDecodeHeaderOnly(t *testing.T) {
	events, err := decodeAll(t, "type,client,tx,amount\n")
	require.NoError(t, err)
	assert.Empty(t, events)
}

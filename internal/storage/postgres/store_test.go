package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*SnapshotStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSnapshotStore(db), mock
}

func TestEnsureSchema(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(createAccountSnapshots)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(createRejectedEvents)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSnapshotCommits(t *testing.T) {
	store, mock := newMock(t)

	summaries := []models.ClientSummary{
		{ID: 1, Available: decimal.RequireFromString("1.5"), Held: decimal.Zero, Total: decimal.RequireFromString("1.5")},
		{ID: 2, Available: decimal.Zero, Held: decimal.RequireFromString("2"), Total: decimal.RequireFromString("2"), Frozen: true},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertSnapshot)).
		WithArgs("run-1", int64(1), "1.5", "0", "1.5", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertSnapshot)).
		WithArgs("run-1", int64(2), "0", "2", "2", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.SaveSnapshot(context.Background(), "run-1", summaries))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSnapshotRollsBackOnError(t *testing.T) {
	store, mock := newMock(t)
	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertSnapshot)).WillReturnError(boom)
	mock.ExpectRollback()

	err := store.SaveSnapshot(context.Background(), "run-1", []models.ClientSummary{{ID: 1}})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRejection(t *testing.T) {
	store, mock := newMock(t)

	amount := decimal.RequireFromString("11")
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	rejection := events.EventRejected{
		ID:            "rej-1",
		RunID:         "run-1",
		EventType:     "withdrawal",
		ClientID:      3,
		TransactionID: 7,
		Amount:        &amount,
		Reason:        string(models.KindInsufficientFunds),
		Message:       "insufficient",
		OccurredAt:    at,
	}

	mock.ExpectExec(regexp.QuoteMeta(insertRejection)).
		WithArgs("rej-1", "run-1", "withdrawal", int64(3), int64(7), "11", "insufficient_funds", "insufficient", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SaveRejection(context.Background(), rejection))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRejectionWithoutAmount(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(insertRejection)).
		WithArgs("rej-2", "run-1", "dispute", int64(1), int64(2), nil, "client_not_found", "client 1 does not exist", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveRejection(context.Background(), events.EventRejected{
		ID:            "rej-2",
		RunID:         "run-1",
		EventType:     "dispute",
		ClientID:      1,
		TransactionID: 2,
		Reason:        "client_not_found",
		Message:       "client 1 does not exist",
		OccurredAt:    time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	interfaces "github.com/sheikh-saqib/transaction-event-ledger/internal/interfaces" // interface SnapshotSink
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models/events"
)

const (
	createAccountSnapshots = `CREATE TABLE IF NOT EXISTS account_snapshots (
	run_id TEXT NOT NULL,
	client_id INTEGER NOT NULL,
	available NUMERIC NOT NULL,
	held NUMERIC NOT NULL,
	total NUMERIC NOT NULL,
	locked BOOLEAN NOT NULL,
	PRIMARY KEY (run_id, client_id)
)`

	createRejectedEvents = `CREATE TABLE IF NOT EXISTS rejected_events (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	client_id INTEGER NOT NULL,
	transaction_id BIGINT NOT NULL,
	amount NUMERIC,
	reason TEXT NOT NULL,
	message TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL
)`

	insertSnapshot = `INSERT INTO account_snapshots (run_id, client_id, available, held, total, locked)
	VALUES ($1, $2, $3, $4, $5, $6)`

	insertRejection = `INSERT INTO rejected_events (id, run_id, event_type, client_id, transaction_id, amount, reason, message, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
)

// SnapshotStore exports the outcome of a processing run to Postgres. It is
// write-only: nothing is ever loaded back into a ledger.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{
		db: db,
	}
}

// EnsureSchema creates the export tables if they do not exist yet.
func (p *SnapshotStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createAccountSnapshots, createRejectedEvents} {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// SaveSnapshot writes all summaries of one run atomically.
func (p *SnapshotStore) SaveSnapshot(ctx context.Context, runID string, summaries []models.ClientSummary) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	for _, s := range summaries {
		_, err = dbTx.ExecContext(ctx, insertSnapshot, runID, int64(s.ID), s.Available, s.Held, s.Total, s.Frozen)
		if err != nil {
			return fmt.Errorf("saving client %d: %w", s.ID, err)
		}
	}

	return dbTx.Commit()
}

// SaveRejection records one rejected event.
func (p *SnapshotStore) SaveRejection(ctx context.Context, r events.EventRejected) error {
	var amount any
	if r.Amount != nil {
		amount = *r.Amount
	}

	_, err := p.db.ExecContext(ctx, insertRejection,
		r.ID, r.RunID, r.EventType, int64(r.ClientID), int64(r.TransactionID), amount, r.Reason, r.Message, r.OccurredAt)
	if err != nil {
		return fmt.Errorf("saving rejection %s: %w", r.ID, err)
	}
	return nil
}

var _ interfaces.SnapshotSink = (*SnapshotStore)(nil)

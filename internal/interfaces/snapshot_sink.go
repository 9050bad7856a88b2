package interfaces

import (
	"context"

	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models/events"
)

// SnapshotSink receives the results of a processing run.
type SnapshotSink interface {
	SaveRejection(ctx context.Context, rejection events.EventRejected) error
	SaveSnapshot(ctx context.Context, runID string, summaries []models.ClientSummary) error
}

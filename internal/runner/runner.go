// Package runner drives one batch processing run: decode events, apply them
// to a ledger store, then emit the final client snapshot.
//
// Decode failures abort the run. Ledger rejections are logged, counted and
// forwarded to the optional publisher and sink; processing carries on.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/csvio"
	interfaces "github.com/sheikh-saqib/transaction-event-ledger/internal/interfaces"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/ledger"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models/events"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Report summarizes a completed run.
type Report struct {
	RunID    string
	Events   int
	Rejected int
	Clients  int
}

// Runner processes one CSV stream against a store it owns.
type Runner struct {
	store     interfaces.LedgerStore
	logger    *zap.Logger
	publisher interfaces.EventPublisher
	sink      interfaces.SnapshotSink
	precision int32
	runID     string
	now       func() time.Time

	// outbound collects messages for the publisher; they are sent in one
	// batch once the snapshot is taken.
	outbound []interfaces.Message
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithPublisher forwards rejections and the final snapshot to p.
func WithPublisher(p interfaces.EventPublisher) Option {
	return func(r *Runner) {
		r.publisher = p
	}
}

// WithSink exports rejections and the final snapshot to s.
func WithSink(s interfaces.SnapshotSink) Option {
	return func(r *Runner) {
		r.sink = s
	}
}

// WithPrecision sets the number of decimal places in the CSV output.
func WithPrecision(places int32) Option {
	return func(r *Runner) {
		r.precision = places
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}

// New creates a Runner over store.
func New(store interfaces.LedgerStore, opts ...Option) *Runner {
	r := &Runner{
		store:     store,
		logger:    zap.NewNop(),
		precision: 5,
		runID:     uuid.NewString(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("run_id", r.runID))

	return r
}

// Run reads events from in until EOF and writes the final snapshot to out.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (Report, error) {
	report := Report{RunID: r.runID}
	dec := csvio.NewDecoder(in)
	r.outbound = r.outbound[:0]

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		ev, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("decoding input: %w", err)
		}
		report.Events++

		r.logger.Debug("processing transaction event",
			zap.String("type", string(ev.Kind())),
			zap.Uint16("client", ev.Client()),
			zap.Uint32("tx", ev.Transaction()))

		if err := ledger.Apply(r.store, ev); err != nil {
			var txErr *models.TransactionError
			if !errors.As(err, &txErr) {
				return report, err
			}
			report.Rejected++
			r.reject(ctx, ev, txErr)
		}
	}

	summaries := make([]models.ClientSummary, 0)
	for s := range r.store.Snapshot() {
		summaries = append(summaries, s.Rounded(r.precision))
	}
	report.Clients = len(summaries)

	if _, err := csvio.WriteAll(out, r.precision, slices.Values(summaries)); err != nil {
		return report, fmt.Errorf("writing output: %w", err)
	}

	r.export(ctx, summaries)

	r.logger.Info("run complete",
		zap.Int("events", report.Events),
		zap.Int("rejected", report.Rejected),
		zap.Int("clients", report.Clients))

	return report, nil
}

func (r *Runner) reject(ctx context.Context, ev models.Event, txErr *models.TransactionError) {
	r.logger.Warn("transaction error",
		zap.String("type", string(ev.Kind())),
		zap.Uint16("client", ev.Client()),
		zap.Uint32("tx", ev.Transaction()),
		zap.String("kind", string(txErr.Kind)),
		zap.Error(txErr))

	if r.publisher == nil && r.sink == nil {
		return
	}

	rejection := events.EventRejected{
		ID:            uuid.NewString(),
		RunID:         r.runID,
		EventType:     string(ev.Kind()),
		ClientID:      ev.Client(),
		TransactionID: ev.Transaction(),
		Amount:        eventAmount(ev),
		Reason:        string(txErr.Kind),
		Message:       txErr.Error(),
		OccurredAt:    r.now().UTC(),
	}

	if r.publisher != nil {
		r.outbound = append(r.outbound, interfaces.Message{Key: clientKey(ev.Client()), Event: rejection})
	}
	if r.sink != nil {
		if err := r.sink.SaveRejection(ctx, rejection); err != nil {
			r.logger.Error("saving rejection", zap.Error(err))
		}
	}
}

// export hands the rounded snapshot to the sink, and the buffered rejections
// plus one snapshot message per client to the publisher. Failures are logged:
// the CSV output has already been written.
func (r *Runner) export(ctx context.Context, summaries []models.ClientSummary) {
	if r.publisher != nil {
		takenAt := r.now().UTC()
		for _, s := range summaries {
			r.outbound = append(r.outbound, interfaces.Message{
				Key: clientKey(s.ID),
				Event: events.AccountSnapshot{
					ID:        uuid.NewString(),
					RunID:     r.runID,
					ClientID:  s.ID,
					Available: s.Available,
					Held:      s.Held,
					Total:     s.Total,
					Locked:    s.Frozen,
					TakenAt:   takenAt,
				},
			})
		}

		if err := r.publisher.Publish(ctx, r.outbound...); err != nil {
			r.logger.Error("publishing run messages", zap.Int("messages", len(r.outbound)), zap.Error(err))
		}
		r.outbound = r.outbound[:0]
	}

	if r.sink != nil {
		if err := r.sink.SaveSnapshot(ctx, r.runID, summaries); err != nil {
			r.logger.Error("saving snapshot", zap.Error(err))
		}
	}
}

func eventAmount(ev models.Event) *decimal.Decimal {
	switch e := ev.(type) {
	case models.Deposit:
		return &e.Amount
	case models.Withdrawal:
		return &e.Amount
	default:
		return nil
	}
}

func clientKey(id models.ClientID) string {
	return strconv.FormatUint(uint64(id), 10)
}

package ledger

import (
	"iter"
	"sync"

	interfaces "github.com/sheikh-saqib/transaction-event-ledger/internal/interfaces"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
)

// shard is the slice of ledger state belonging to one client.
type shard struct {
	mu    sync.Mutex
	store interfaces.LedgerStore
}

// Ledger serializes events per client so that several callers can submit
// events at once. Every mutation is scoped to one client id, so one lock per
// client is enough; no global lock is held while an event is applied.
type Ledger struct {
	newStore func() interfaces.LedgerStore
	shards   map[models.ClientID]*shard // one store per client
	mapMu    sync.RWMutex               // protects the shards map itself
}

// NewLedger creates a Ledger that builds each client's store with newStore.
func NewLedger(newStore func() interfaces.LedgerStore) *Ledger {
	return &Ledger{
		newStore: newStore,
		shards:   make(map[models.ClientID]*shard),
	}
}

func (l *Ledger) getShard(client models.ClientID) *shard {
	l.mapMu.RLock()
	s, exists := l.shards[client]
	l.mapMu.RUnlock()
	if exists {
		return s
	}

	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if s, exists = l.shards[client]; !exists {
		s = &shard{store: l.newStore()}
		l.shards[client] = s
	}
	return s
}

// Process applies ev under its client's lock.
func (l *Ledger) Process(ev models.Event) error {
	s := l.getShard(ev.Client())

	s.mu.Lock()
	defer s.mu.Unlock()

	return Apply(s.store, ev)
}

// Client returns the current summary of one client.
func (l *Ledger) Client(id models.ClientID) (models.ClientSummary, bool) {
	l.mapMu.RLock()
	s, exists := l.shards[id]
	l.mapMu.RUnlock()
	if !exists {
		return models.ClientSummary{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.store.Snapshot() {
		if c.ID == id {
			return c, true
		}
	}
	return models.ClientSummary{}, false
}

// Snapshot yields every known client. Each shard is locked only while it is
// read, so the result is not a single point-in-time view across clients.
func (l *Ledger) Snapshot() iter.Seq[models.ClientSummary] {
	return func(yield func(models.ClientSummary) bool) {
		l.mapMu.RLock()
		shards := make([]*shard, 0, len(l.shards))
		for _, s := range l.shards {
			shards = append(shards, s)
		}
		l.mapMu.RUnlock()

		for _, s := range shards {
			s.mu.Lock()
			var summaries []models.ClientSummary
			for c := range s.store.Snapshot() {
				summaries = append(summaries, c)
			}
			s.mu.Unlock()

			for _, c := range summaries {
				if !yield(c) {
					return
				}
			}
		}
	}
}

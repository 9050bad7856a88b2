package ledger

import (
	"fmt"

	interfaces "github.com/sheikh-saqib/transaction-event-ledger/internal/interfaces"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
)

// Apply routes ev to the matching store operation and returns its result
// unchanged.
func Apply(store interfaces.LedgerStore, ev models.Event) error {
	switch e := ev.(type) {
	case models.Deposit:
		return store.Deposit(e.Tx, e.Owner, e.Amount)
	case models.Withdrawal:
		return store.Withdrawal(e.Tx, e.Owner, e.Amount)
	case models.Dispute:
		return store.Dispute(e.Tx, e.Owner)
	case models.Resolve:
		return store.Resolve(e.Tx, e.Owner)
	case models.Chargeback:
		return store.Chargeback(e.Tx, e.Owner)
	default:
		return fmt.Errorf("%w: %T", models.ErrUnknownEvent, ev)
	}
}

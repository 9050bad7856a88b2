package interfaces

import (
	"iter"

	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// LedgerStore owns per-client balances and per-transaction history.
// Every operation either succeeds completely or leaves state untouched and
// returns a *models.TransactionError.
type LedgerStore interface {
	Deposit(tx models.TransactionID, client models.ClientID, amount decimal.Decimal) error
	Withdrawal(tx models.TransactionID, client models.ClientID, amount decimal.Decimal) error
	Dispute(tx models.TransactionID, client models.ClientID) error
	Resolve(tx models.TransactionID, client models.ClientID) error
	Chargeback(tx models.TransactionID, client models.ClientID) error

	// Snapshot yields one summary per known client, in no particular order.
	Snapshot() iter.Seq[models.ClientSummary]
}

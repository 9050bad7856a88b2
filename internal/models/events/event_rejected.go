package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventRejected is published when the ledger refuses an event.
type EventRejected struct {
	ID            string           `json:"id"`
	RunID         string           `json:"run_id"`
	EventType     string           `json:"event_type"`
	ClientID      uint16           `json:"client_id"`
	TransactionID uint32           `json:"transaction_id"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Reason        string           `json:"reason"`
	Message       string           `json:"message"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSnapshot is published once per client at the end of a run.
type AccountSnapshot struct {
	ID        string          `json:"id"`
	RunID     string          `json:"run_id"`
	ClientID  uint16          `json:"client_id"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
	TakenAt   time.Time       `json:"taken_at"`
}

package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one untyped input row, as decoded from CSV or JSON.
type Record struct {
	Type   string           `json:"type"`
	Client ClientID         `json:"client"`
	Tx     TransactionID    `json:"tx"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// ToEvent converts r into its typed event. Deposits and withdrawals need an
// amount; any amount on the other kinds is ignored.
func (r Record) ToEvent() (Event, error) {
	switch EventKind(strings.TrimSpace(r.Type)) {
	case KindDeposit:
		if r.Amount == nil {
			return nil, &DecodeError{Type: r.Type, Err: ErrMissingAmount}
		}
		return Deposit{Tx: r.Tx, Owner: r.Client, Amount: *r.Amount}, nil
	case KindWithdrawal:
		if r.Amount == nil {
			return nil, &DecodeError{Type: r.Type, Err: ErrMissingAmount}
		}
		return Withdrawal{Tx: r.Tx, Owner: r.Client, Amount: *r.Amount}, nil
	case KindDispute:
		return Dispute{Tx: r.Tx, Owner: r.Client}, nil
	case KindResolve:
		return Resolve{Tx: r.Tx, Owner: r.Client}, nil
	case KindChargeback:
		return Chargeback{Tx: r.Tx, Owner: r.Client}, nil
	default:
		return nil, &DecodeError{Type: r.Type, Err: ErrUnknownEventType}
	}
}

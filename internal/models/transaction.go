package models

import "github.com/shopspring/decimal"

// ClientID identifies a client account.
type ClientID = uint16

// TransactionID identifies a deposit or withdrawal within a client's history.
type TransactionID = uint32

// TransactionState tracks where a recorded transaction sits in the dispute lifecycle.
type TransactionState uint8

const (
	StateSettled TransactionState = iota
	StateDisputed
	StateChargedBack // terminal
)

func (s TransactionState) String() string {
	switch s {
	case StateSettled:
		return "settled"
	case StateDisputed:
		return "disputed"
	case StateChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// TransactionRecord is an accepted deposit or withdrawal.
//
// Amount is signed: positive for deposits, negative for withdrawals. This lets
// dispute, resolve and chargeback move funds with the same arithmetic for both.
type TransactionRecord struct {
	ClientID      ClientID
	TransactionID TransactionID
	Amount        decimal.Decimal
	State         TransactionState
}

// Disputed reports whether the amount currently sits (or last sat) in held funds.
// A charged back transaction stays disputed.
func (r TransactionRecord) Disputed() bool {
	return r.State != StateSettled
}

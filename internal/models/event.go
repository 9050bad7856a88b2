package models

import "github.com/shopspring/decimal"

// Event is one of Deposit, Withdrawal, Dispute, Resolve or Chargeback.
// The set is closed: only types in this package implement it.
type Event interface {
	Client() ClientID
	Transaction() TransactionID
	Kind() EventKind

	event()
}

// EventKind is the wire label of an event.
type EventKind string

const (
	KindDeposit    EventKind = "deposit"
	KindWithdrawal EventKind = "withdrawal"
	KindDispute    EventKind = "dispute"
	KindResolve    EventKind = "resolve"
	KindChargeback EventKind = "chargeback"
)

// Deposit credits Amount to the client's available funds.
type Deposit struct {
	Tx     TransactionID
	Owner  ClientID
	Amount decimal.Decimal
}

// Withdrawal debits Amount from the client's available funds.
type Withdrawal struct {
	Tx     TransactionID
	Owner  ClientID
	Amount decimal.Decimal
}

// Dispute moves a past transaction's amount from available to held.
type Dispute struct {
	Tx    TransactionID
	Owner ClientID
}

// Resolve releases a disputed transaction's amount back to available.
type Resolve struct {
	Tx    TransactionID
	Owner ClientID
}

// Chargeback removes a disputed transaction's held amount and freezes the account.
type Chargeback struct {
	Tx    TransactionID
	Owner ClientID
}

func (e Deposit) Client() ClientID           { return e.Owner }
func (e Deposit) Transaction() TransactionID { return e.Tx }
func (Deposit) Kind() EventKind              { return KindDeposit }
func (Deposit) event()                       {}

func (e Withdrawal) Client() ClientID           { return e.Owner }
func (e Withdrawal) Transaction() TransactionID { return e.Tx }
func (Withdrawal) Kind() EventKind              { return KindWithdrawal }
func (Withdrawal) event()                       {}

func (e Dispute) Client() ClientID           { return e.Owner }
func (e Dispute) Transaction() TransactionID { return e.Tx }
func (Dispute) Kind() EventKind              { return KindDispute }
func (Dispute) event()                       {}

func (e Resolve) Client() ClientID           { return e.Owner }
func (e Resolve) Transaction() TransactionID { return e.Tx }
func (Resolve) Kind() EventKind              { return KindResolve }
func (Resolve) event()                       {}

func (e Chargeback) Client() ClientID           { return e.Owner }
func (e Chargeback) Transaction() TransactionID { return e.Tx }
func (Chargeback) Kind() EventKind              { return KindChargeback }
func (Chargeback) event()                       {}

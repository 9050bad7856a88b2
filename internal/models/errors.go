package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel ledger errors. Every *TransactionError matches exactly one of them
// through errors.Is.
var (
	ErrClientNotFound         = errors.New("client not found")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrAccountFrozen          = errors.New("account frozen")
	ErrAlreadyDisputed        = errors.New("transaction already disputed")
	ErrNotDisputed            = errors.New("transaction not disputed")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrDuplicateTransaction   = errors.New("duplicate transaction")
	ErrTransactionChargedBack = errors.New("transaction charged back")

	// ErrUnknownEvent is returned by the dispatcher for an event it cannot route.
	ErrUnknownEvent = errors.New("unknown event")
)

// Decode failures. These abort a processing run.
var (
	ErrMissingAmount    = errors.New("amount column required")
	ErrUnknownEventType = errors.New("unknown transaction event type")
)

// ErrorKind names a ledger rejection.
type ErrorKind string

const (
	KindClientNotFound         ErrorKind = "client_not_found"
	KindInsufficientFunds      ErrorKind = "insufficient_funds"
	KindAccountFrozen          ErrorKind = "account_frozen"
	KindAlreadyDisputed        ErrorKind = "already_disputed"
	KindNotDisputed            ErrorKind = "not_disputed"
	KindTransactionNotFound    ErrorKind = "transaction_not_found"
	KindDuplicateTransaction   ErrorKind = "duplicate_transaction"
	KindTransactionChargedBack ErrorKind = "transaction_charged_back"
)

var sentinels = map[ErrorKind]error{
	KindClientNotFound:         ErrClientNotFound,
	KindInsufficientFunds:      ErrInsufficientFunds,
	KindAccountFrozen:          ErrAccountFrozen,
	KindAlreadyDisputed:        ErrAlreadyDisputed,
	KindNotDisputed:            ErrNotDisputed,
	KindTransactionNotFound:    ErrTransactionNotFound,
	KindDuplicateTransaction:   ErrDuplicateTransaction,
	KindTransactionChargedBack: ErrTransactionChargedBack,
}

// TransactionError is a per-event ledger rejection. The event is dropped and
// no state changes; processing continues with the next event.
//
// Amount and Available are only set for KindInsufficientFunds.
type TransactionError struct {
	Kind          ErrorKind
	ClientID      ClientID
	TransactionID TransactionID
	Amount        decimal.Decimal
	Available     decimal.Decimal
}

func (e *TransactionError) Error() string {
	switch e.Kind {
	case KindClientNotFound:
		return fmt.Sprintf("client %d does not exist", e.ClientID)
	case KindInsufficientFunds:
		return fmt.Sprintf("client %d does not have sufficient funds (%s) to process withdrawal transaction %d for %s",
			e.ClientID, e.Available, e.TransactionID, e.Amount)
	case KindAccountFrozen:
		return fmt.Sprintf("client %d's account is frozen", e.ClientID)
	case KindAlreadyDisputed:
		return fmt.Sprintf("transaction %d is already disputed", e.TransactionID)
	case KindNotDisputed:
		return fmt.Sprintf("transaction %d is not disputed", e.TransactionID)
	case KindTransactionNotFound:
		return fmt.Sprintf("transaction %d does not exist", e.TransactionID)
	case KindDuplicateTransaction:
		return fmt.Sprintf("duplicate transaction %d", e.TransactionID)
	case KindTransactionChargedBack:
		return fmt.Sprintf("transaction %d was already charged back", e.TransactionID)
	default:
		return fmt.Sprintf("ledger error %q on transaction %d", e.Kind, e.TransactionID)
	}
}

// Is reports whether target is the sentinel for e's kind.
func (e *TransactionError) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

func ClientNotFound(client ClientID) *TransactionError {
	return &TransactionError{Kind: KindClientNotFound, ClientID: client}
}

func InsufficientFunds(client ClientID, tx TransactionID, amount, available decimal.Decimal) *TransactionError {
	return &TransactionError{
		Kind:          KindInsufficientFunds,
		ClientID:      client,
		TransactionID: tx,
		Amount:        amount,
		Available:     available,
	}
}

func AccountFrozen(client ClientID) *TransactionError {
	return &TransactionError{Kind: KindAccountFrozen, ClientID: client}
}

func AlreadyDisputed(client ClientID, tx TransactionID) *TransactionError {
	return &TransactionError{Kind: KindAlreadyDisputed, ClientID: client, TransactionID: tx}
}

func NotDisputed(client ClientID, tx TransactionID) *TransactionError {
	return &TransactionError{Kind: KindNotDisputed, ClientID: client, TransactionID: tx}
}

func TransactionNotFound(client ClientID, tx TransactionID) *TransactionError {
	return &TransactionError{Kind: KindTransactionNotFound, ClientID: client, TransactionID: tx}
}

func DuplicateTransaction(client ClientID, tx TransactionID) *TransactionError {
	return &TransactionError{Kind: KindDuplicateTransaction, ClientID: client, TransactionID: tx}
}

func TransactionChargedBack(client ClientID, tx TransactionID) *TransactionError {
	return &TransactionError{Kind: KindTransactionChargedBack, ClientID: client, TransactionID: tx}
}

// DecodeError reports a malformed input record. Line is 1-based and counts
// the header; it is zero when the record did not come from a file.
type DecodeError struct {
	Line int
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.cause())
	}
	return e.cause()
}

func (e *DecodeError) cause() string {
	switch {
	case errors.Is(e.Err, ErrMissingAmount):
		return fmt.Sprintf("amount column required for %s", e.Type)
	case errors.Is(e.Err, ErrUnknownEventType):
		return fmt.Sprintf("unknown transaction event type %q", e.Type)
	default:
		return e.Err.Error()
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

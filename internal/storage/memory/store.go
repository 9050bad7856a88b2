package memory

import (
	"iter"

	interfaces "github.com/sheikh-saqib/transaction-event-ledger/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// account holds the mutable balances of one client. Total is always derived.
type account struct {
	available decimal.Decimal
	held      decimal.Decimal
	frozen    bool
}

func (a *account) summary(id models.ClientID) models.ClientSummary {
	return models.ClientSummary{
		ID:        id,
		Available: a.available,
		Held:      a.held,
		Total:     a.available.Add(a.held),
		Frozen:    a.frozen,
	}
}

type historyKey struct {
	client models.ClientID
	tx     models.TransactionID
}

// Store is the in-memory ledger.
// It is not safe for concurrent use; wrap it in ledger.Ledger for that.
type Store struct {
	accounts map[models.ClientID]*account
	history  map[historyKey]*models.TransactionRecord
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[models.ClientID]*account),
		history:  make(map[historyKey]*models.TransactionRecord),
	}
}

// ensureUnique is the pre-flight check for deposits and withdrawals.
func (s *Store) ensureUnique(tx models.TransactionID, client models.ClientID) error {
	if _, exists := s.history[historyKey{client, tx}]; exists {
		return models.DuplicateTransaction(client, tx)
	}
	return nil
}

func (s *Store) record(tx models.TransactionID, client models.ClientID, amount decimal.Decimal) {
	s.history[historyKey{client, tx}] = &models.TransactionRecord{
		ClientID:      client,
		TransactionID: tx,
		Amount:        amount,
		State:         models.StateSettled,
	}
}

// lookup resolves the account and transaction a dispute, resolve or
// chargeback refers to.
func (s *Store) lookup(tx models.TransactionID, client models.ClientID) (*account, *models.TransactionRecord, error) {
	acc, ok := s.accounts[client]
	if !ok {
		return nil, nil, models.ClientNotFound(client)
	}

	rec, ok := s.history[historyKey{client, tx}]
	if !ok {
		return nil, nil, models.TransactionNotFound(client, tx)
	}

	return acc, rec, nil
}

// Deposit credits amount to the client, creating the account on first use.
// amount is expected to be non-negative.
func (s *Store) Deposit(tx models.TransactionID, client models.ClientID, amount decimal.Decimal) error {
	if err := s.ensureUnique(tx, client); err != nil {
		return err
	}

	acc, ok := s.accounts[client]
	if ok && acc.frozen {
		return models.AccountFrozen(client)
	}
	if !ok {
		acc = &account{}
		s.accounts[client] = acc
	}

	s.record(tx, client, amount)
	acc.available = acc.available.Add(amount)

	return nil
}

// Withdrawal debits amount from the client's available funds. Unlike Deposit
// it never creates an account.
func (s *Store) Withdrawal(tx models.TransactionID, client models.ClientID, amount decimal.Decimal) error {
	if err := s.ensureUnique(tx, client); err != nil {
		return err
	}

	acc, ok := s.accounts[client]
	if !ok {
		return models.ClientNotFound(client)
	}

	if acc.frozen {
		return models.AccountFrozen(client)
	}

	if acc.available.LessThan(amount) {
		return models.InsufficientFunds(client, tx, amount, acc.available)
	}

	s.record(tx, client, amount.Neg())
	acc.available = acc.available.Sub(amount)

	return nil
}

// Dispute holds the transaction's original amount.
//
// Withdrawals carry a negative amount, so disputing one pushes held below
// zero and can leave available negative once other funds move. No floor is
// enforced.
func (s *Store) Dispute(tx models.TransactionID, client models.ClientID) error {
	acc, rec, err := s.lookup(tx, client)
	if err != nil {
		return err
	}

	if rec.Disputed() {
		return models.AlreadyDisputed(client, tx)
	}

	rec.State = models.StateDisputed
	acc.available = acc.available.Sub(rec.Amount)
	acc.held = acc.held.Add(rec.Amount)

	return nil
}

// Resolve releases a disputed transaction's amount back to available.
func (s *Store) Resolve(tx models.TransactionID, client models.ClientID) error {
	acc, rec, err := s.lookup(tx, client)
	if err != nil {
		return err
	}

	switch rec.State {
	case models.StateChargedBack:
		return models.TransactionChargedBack(client, tx)
	case models.StateSettled:
		return models.NotDisputed(client, tx)
	}

	rec.State = models.StateSettled
	acc.available = acc.available.Add(rec.Amount)
	acc.held = acc.held.Sub(rec.Amount)

	return nil
}

// Chargeback removes a disputed transaction's held amount and freezes the
// account. The transaction stays disputed and accepts no further transitions.
func (s *Store) Chargeback(tx models.TransactionID, client models.ClientID) error {
	acc, rec, err := s.lookup(tx, client)
	if err != nil {
		return err
	}

	switch rec.State {
	case models.StateChargedBack:
		return models.TransactionChargedBack(client, tx)
	case models.StateSettled:
		return models.NotDisputed(client, tx)
	}

	rec.State = models.StateChargedBack
	acc.held = acc.held.Sub(rec.Amount)
	acc.frozen = true

	return nil
}

// Snapshot yields the current state of every client. Each call to the
// returned sequence reads the store afresh.
func (s *Store) Snapshot() iter.Seq[models.ClientSummary] {
	return func(yield func(models.ClientSummary) bool) {
		for id, acc := range s.accounts {
			if !yield(acc.summary(id)) {
				return
			}
		}
	}
}

// Client returns the summary of a single client.
func (s *Store) Client(id models.ClientID) (models.ClientSummary, bool) {
	acc, ok := s.accounts[id]
	if !ok {
		return models.ClientSummary{}, false
	}
	return acc.summary(id), true
}

// Transaction returns a copy of a recorded transaction.
func (s *Store) Transaction(client models.ClientID, tx models.TransactionID) (models.TransactionRecord, bool) {
	rec, ok := s.history[historyKey{client, tx}]
	if !ok {
		return models.TransactionRecord{}, false
	}
	return *rec, true
}

// Len returns the number of known clients.
func (s *Store) Len() int {
	return len(s.accounts)
}

// Compile-time check: ensure Store implements LedgerStore interface
var _ interfaces.LedgerStore = (*Store)(nil)

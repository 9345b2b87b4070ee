package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type inMemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
	txns     map[string][]Transaction
}

// NewInMemory creates a concurrency-safe in-memory ledger store useful for
// unit tests and running without a database.
func NewInMemory() Store {
	return &inMemoryStore{
		accounts: make(map[string]Account),
		txns:     make(map[string][]Transaction),
	}
}

func (s *inMemoryStore) CreateAccount(_ context.Context, username string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[username]; exists {
		return Account{}, ErrDuplicateAccount
	}
	acct := Account{
		ID:        uuid.New(),
		Username:  username,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	s.accounts[username] = acct
	return acct, nil
}

func (s *inMemoryStore) Account(_ context.Context, username string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[username]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acct, nil
}

func (s *inMemoryStore) Deposit(_ context.Context, username string, amount decimal.Decimal) (Account, Transaction, error) {
	return s.apply(username, amount, TypeDeposit)
}

func (s *inMemoryStore) Withdraw(_ context.Context, username string, amount decimal.Decimal) (Account, Transaction, error) {
	return s.apply(username, amount, TypeWithdraw)
}

func (s *inMemoryStore) apply(username string, amount decimal.Decimal, kind Type) (Account, Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[username]
	if !ok {
		return Account{}, Transaction{}, ErrAccountNotFound
	}

	switch kind {
	case TypeWithdraw:
		if acct.Balance.LessThan(amount) {
			return Account{}, Transaction{}, ErrInsufficientFunds
		}
		acct.Balance = acct.Balance.Sub(amount)
	default:
		acct.Balance = acct.Balance.Add(amount)
	}

	txn := Transaction{
		ID:        uuid.New(),
		AccountID: acct.ID,
		Amount:    amount,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
	}

	s.accounts[username] = acct
	s.txns[username] = append(s.txns[username], txn)
	return acct, txn, nil
}

func (s *inMemoryStore) Transactions(_ context.Context, username string) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.accounts[username]; !ok {
		return nil, ErrAccountNotFound
	}
	// Appended in commit order, which is already oldest first.
	txns := make([]Transaction, len(s.txns[username]))
	copy(txns, s.txns[username])
	return txns, nil
}

package wallet

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pouchpay/pouchpay/internal/ledger"
)

// Service enforces the wallet business rules on top of the ledger store:
// input validation, the business error taxonomy, and the guarantee that a
// balance mutation and its transaction record commit together.
type Service struct {
	store ledger.Store
}

// NewService builds a wallet service instance.
func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

// Create provisions an account with a zero balance for the username.
func (s *Service) Create(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidUsername
	}
	if _, err := s.store.CreateAccount(ctx, username); err != nil {
		if errors.Is(err, ledger.ErrDuplicateAccount) {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

// Deposit credits the account and records a DEPOSIT transaction. Returns the
// updated balance.
func (s *Service) Deposit(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	acct, _, err := s.store.Deposit(ctx, username, amount)
	if err != nil {
		return decimal.Decimal{}, mapStoreErr(err)
	}
	return acct.Balance, nil
}

// Withdraw debits the account and records a WITHDRAW transaction. Returns the
// updated balance. Validation order: amount, account existence, then balance
// coverage.
func (s *Service) Withdraw(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	acct, _, err := s.store.Withdraw(ctx, username, amount)
	if err != nil {
		return decimal.Decimal{}, mapStoreErr(err)
	}
	return acct.Balance, nil
}

// Balance returns the current balance for the username.
func (s *Service) Balance(ctx context.Context, username string) (decimal.Decimal, error) {
	acct, err := s.store.Account(ctx, username)
	if err != nil {
		return decimal.Decimal{}, mapStoreErr(err)
	}
	return acct.Balance, nil
}

// Transactions returns the account's full history, oldest first.
func (s *Service) Transactions(ctx context.Context, username string) ([]ledger.Transaction, error) {
	txns, err := s.store.Transactions(ctx, username)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return txns, nil
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return ErrUserNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return ErrInsufficientBalance
	default:
		return err
	}
}

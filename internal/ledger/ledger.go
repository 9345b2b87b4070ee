package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound occurs when no account exists for the requested username.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount indicates the username is already taken.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInsufficientFunds occurs when the account balance cannot cover a
	// requested withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Type identifies the direction of a balance movement.
type Type string

const (
	// TypeDeposit marks a credit to the account balance.
	TypeDeposit Type = "DEPOSIT"
	// TypeWithdraw marks a debit from the account balance.
	TypeWithdraw Type = "WITHDRAW"
)

// Account is the ledger record holding a user's balance, keyed by username.
type Account struct {
	ID        uuid.UUID
	Username  string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// Transaction is an immutable record of one balance-changing event. Amount is
// always strictly positive; Type carries the direction.
type Transaction struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Amount    decimal.Decimal
	Type      Type
	CreatedAt time.Time
}

// Store defines the contract implemented by ledger backends (e.g. Postgres).
// Deposit and Withdraw perform the balance mutation and the transaction
// append as one atomic unit of work: either both commit or neither does.
// Transactions returns the account's history ordered by creation time.
type Store interface {
	CreateAccount(ctx context.Context, username string) (Account, error)
	Account(ctx context.Context, username string) (Account, error)
	Deposit(ctx context.Context, username string, amount decimal.Decimal) (Account, Transaction, error)
	Withdraw(ctx context.Context, username string, amount decimal.Decimal) (Account, Transaction, error)
	Transactions(ctx context.Context, username string) ([]Transaction, error)
}

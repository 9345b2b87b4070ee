package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore persists accounts and transactions in PostgreSQL. Balance
// mutations lock the account row with SELECT ... FOR UPDATE so concurrent
// deposits and withdrawals against the same account serialize instead of
// losing updates.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateAccount inserts a new account with a zero balance.
func (s *PostgresStore) CreateAccount(ctx context.Context, username string) (Account, error) {
	acct := Account{
		ID:        uuid.New(),
		Username:  username,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	tag, err := s.db.Exec(ctx, `INSERT INTO accounts (id, username, balance, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (username) DO NOTHING`, acct.ID, acct.Username, acct.Balance, acct.CreatedAt)
	if err != nil {
		return Account{}, err
	}
	if tag.RowsAffected() == 0 {
		return Account{}, ErrDuplicateAccount
	}
	return acct, nil
}

// Account fetches the account for the given username.
func (s *PostgresStore) Account(ctx context.Context, username string) (Account, error) {
	row := s.db.QueryRow(ctx, `SELECT id, balance, created_at FROM accounts WHERE username = $1`, username)
	acct := Account{Username: username}
	if err := row.Scan(&acct.ID, &acct.Balance, &acct.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	acct.CreatedAt = acct.CreatedAt.UTC()
	return acct, nil
}

// Deposit credits the account and appends a DEPOSIT transaction atomically.
func (s *PostgresStore) Deposit(ctx context.Context, username string, amount decimal.Decimal) (Account, Transaction, error) {
	return s.apply(ctx, username, amount, TypeDeposit)
}

// Withdraw debits the account and appends a WITHDRAW transaction atomically.
// Returns ErrInsufficientFunds when the balance cannot cover the amount; the
// check runs while holding the row lock.
func (s *PostgresStore) Withdraw(ctx context.Context, username string, amount decimal.Decimal) (Account, Transaction, error) {
	return s.apply(ctx, username, amount, TypeWithdraw)
}

func (s *PostgresStore) apply(ctx context.Context, username string, amount decimal.Decimal, kind Type) (Account, Transaction, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Account{}, Transaction{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	row := tx.QueryRow(ctx, `SELECT id, balance, created_at FROM accounts WHERE username = $1 FOR UPDATE`, username)
	acct := Account{Username: username}
	if err := row.Scan(&acct.ID, &acct.Balance, &acct.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, Transaction{}, ErrAccountNotFound
		}
		return Account{}, Transaction{}, err
	}

	var newBalance decimal.Decimal
	switch kind {
	case TypeWithdraw:
		if acct.Balance.LessThan(amount) {
			return Account{}, Transaction{}, ErrInsufficientFunds
		}
		newBalance = acct.Balance.Sub(amount)
	default:
		newBalance = acct.Balance.Add(amount)
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1 WHERE id = $2`, newBalance, acct.ID); err != nil {
		return Account{}, Transaction{}, err
	}

	txn := Transaction{
		ID:        uuid.New(),
		AccountID: acct.ID,
		Amount:    amount,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, account_id, amount, type, created_at)
        VALUES ($1, $2, $3, $4, $5)`, txn.ID, txn.AccountID, txn.Amount, txn.Type, txn.CreatedAt); err != nil {
		return Account{}, Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Account{}, Transaction{}, err
	}

	acct.Balance = newBalance
	acct.CreatedAt = acct.CreatedAt.UTC()
	return acct, txn, nil
}

// Transactions returns the account's history ordered by creation time, oldest
// first, with the transaction id as tie breaker.
func (s *PostgresStore) Transactions(ctx context.Context, username string) ([]Transaction, error) {
	acct, err := s.Account(ctx, username)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `SELECT id, account_id, amount, type, created_at
        FROM transactions WHERE account_id = $1
        ORDER BY created_at, id`, acct.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		var txn Transaction
		if err := rows.Scan(&txn.ID, &txn.AccountID, &txn.Amount, &txn.Type, &txn.CreatedAt); err != nil {
			return nil, err
		}
		txn.CreatedAt = txn.CreatedAt.UTC()
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

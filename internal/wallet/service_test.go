package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pouchpay/pouchpay/internal/ledger"
)

func newTestService() *Service {
	return NewService(ledger.NewInMemory())
}

func TestCreateDepositWithdrawScenario(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Deposit(ctx, "alice", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := svc.Withdraw(ctx, "alice", decimal.NewFromInt(40)); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	balance, err := svc.Balance(ctx, "alice")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected balance 60, got %s", balance)
	}

	txns, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	if !txns[0].Amount.Equal(decimal.NewFromInt(100)) || txns[0].Type != ledger.TypeDeposit {
		t.Fatalf("expected first transaction DEPOSIT 100, got %s %s", txns[0].Type, txns[0].Amount)
	}
	if !txns[1].Amount.Equal(decimal.NewFromInt(40)) || txns[1].Type != ledger.TypeWithdraw {
		t.Fatalf("expected second transaction WITHDRAW 40, got %s %s", txns[1].Type, txns[1].Amount)
	}
}

func TestCreateEmptyUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, username := range []string{"", "   "} {
		if err := svc.Create(ctx, username); !errors.Is(err, ErrInvalidUsername) {
			t.Fatalf("create(%q): expected ErrInvalidUsername, got %v", username, err)
		}
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, "carol"); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := svc.Create(ctx, "carol")
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if err.Error() != "Username already exists" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDepositInvalidAmount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		if _, err := svc.Deposit(ctx, "alice", amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("deposit(%s): expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	balance, err := svc.Balance(ctx, "alice")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("expected no mutation, balance is %s", balance)
	}
}

func TestWithdrawInvalidAmount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Withdraw(ctx, "alice", decimal.NewFromInt(-10)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, "bob"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Withdraw(ctx, "bob", decimal.NewFromInt(10))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if err.Error() != "Insufficient balance" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	balance, err := svc.Balance(ctx, "bob")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("expected balance to remain 0, got %s", balance)
	}
}

func TestOperationsOnUnknownUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "ghost", decimal.NewFromInt(10)); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("deposit: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Withdraw(ctx, "ghost", decimal.NewFromInt(10)); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("withdraw: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Balance(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("balance: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Transactions(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("transactions: expected ErrUserNotFound, got %v", err)
	}
}

func TestReadsDoNotMutate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Deposit(ctx, "alice", decimal.NewFromInt(75)); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	first, err := svc.Balance(ctx, "alice")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	second, err := svc.Balance(ctx, "alice")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("expected identical balances, got %s then %s", first, second)
	}

	txnsFirst, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	txnsSecond, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txnsFirst) != 1 || len(txnsSecond) != 1 {
		t.Fatalf("expected 1 transaction on both reads, got %d then %d", len(txnsFirst), len(txnsSecond))
	}
	if txnsFirst[0].ID != txnsSecond[0].ID {
		t.Fatalf("expected identical history across reads")
	}
}

func TestWithdrawAgainstSeededBalance(t *testing.T) {
	store := ledger.NewInMemory()
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.Create(ctx, "dave"); err != nil {
		t.Fatalf("create: %v", err)
	}
	ledger.SeedBalance(store, "dave", decimal.RequireFromString("10.50"))

	balance, err := svc.Withdraw(ctx, "dave", decimal.RequireFromString("0.25"))
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("10.25")) {
		t.Fatalf("expected balance 10.25, got %s", balance)
	}
}

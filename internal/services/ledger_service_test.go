package services

import (
	"context"
	"errors"
	"testing"
)

func TestLedgerCreditAndDebit(t *testing.T) {
	t.Parallel()

	stub := newStubStore()
	seedStubUser(stub, "user-1", 10)
	ledger := NewLedgerService(stub)
	ctx := context.Background()

	balance, err := ledger.Credit(ctx, "user-1", 15)
	if err != nil {
		t.Fatalf("Credit() unexpected error: %v", err)
	}
	if balance != 25 {
		t.Fatalf("expected balance 25 after credit, got %d", balance)
	}

	balance, err = ledger.Debit(ctx, "user-1", 20)
	if err != nil {
		t.Fatalf("Debit() unexpected error: %v", err)
	}
	if balance != 5 {
		t.Fatalf("expected balance 5 after debit, got %d", balance)
	}
}

func TestLedgerDebitInsufficientFundsLeavesBalance(t *testing.T) {
	t.Parallel()

	stub := newStubStore()
	seedStubUser(stub, "user-1", 10)
	ledger := NewLedgerService(stub)
	ctx := context.Background()

	_, err := ledger.Debit(ctx, "user-1", 11)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	balance, err := ledger.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("Balance() unexpected error: %v", err)
	}
	if balance != 10 {
		t.Fatalf("failed debit must not touch the balance, got %d", balance)
	}
}

func TestLedgerRejectsNegativeAmounts(t *testing.T) {
	t.Parallel()

	stub := newStubStore()
	seedStubUser(stub, "user-1", 10)
	ledger := NewLedgerService(stub)
	ctx := context.Background()

	if _, err := ledger.Credit(ctx, "user-1", -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative credit, got %v", err)
	}
	if _, err := ledger.Debit(ctx, "user-1", -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative debit, got %v", err)
	}
}

func TestLedgerAdjustOperations(t *testing.T) {
	t.Parallel()

	stub := newStubStore()
	seedStubUser(stub, "user-1", 10)
	ledger := NewLedgerService(stub)
	ctx := context.Background()

	balance, err := ledger.Adjust(ctx, "user-1", 5, CoinOperationAdd)
	if err != nil {
		t.Fatalf("Adjust(add) unexpected error: %v", err)
	}
	if balance != 15 {
		t.Fatalf("expected 15 after add, got %d", balance)
	}

	// Subtract clamps at zero instead of failing.
	balance, err = ledger.Adjust(ctx, "user-1", 100, CoinOperationSubtract)
	if err != nil {
		t.Fatalf("Adjust(subtract) unexpected error: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected clamp to 0, got %d", balance)
	}

	balance, err = ledger.Adjust(ctx, "user-1", 42, CoinOperationSet)
	if err != nil {
		t.Fatalf("Adjust(set) unexpected error: %v", err)
	}
	if balance != 42 {
		t.Fatalf("expected 42 after set, got %d", balance)
	}

	if _, err := ledger.Adjust(ctx, "user-1", -1, CoinOperationSet); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative set, got %v", err)
	}
	if _, err := ledger.Adjust(ctx, "user-1", 1, "multiply"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown operation, got %v", err)
	}
}

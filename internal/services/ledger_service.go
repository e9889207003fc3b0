package services

import (
	"context"
	"fmt"

	"github.com/projectecho/server/internal/store"
)

// Coin-adjustment operations accepted by Adjust.
const (
	CoinOperationAdd      = "add"
	CoinOperationSubtract = "subtract"
	CoinOperationSet      = "set"
)

// LedgerService owns every coin-balance mutation and the non-negativity
// invariant behind it.
type LedgerService struct {
	store store.Store
}

func NewLedgerService(storage store.Store) *LedgerService {
	return &LedgerService{store: storage}
}

func (service *LedgerService) Balance(ctx context.Context, userID string) (int64, error) {
	user, err := service.store.Users().GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.UserCoins, nil
}

// Credit adds amount to the user's balance and returns the new balance.
func (service *LedgerService) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: credit amount must be non-negative", ErrInvalidInput)
	}

	var balance int64
	err := service.store.Atomic(ctx, userID, func(tx store.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		balance = user.UserCoins + amount
		return tx.Users().AddCoins(ctx, userID, amount)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Debit removes amount from the user's balance. A debit that would go
// negative hard-fails with ErrInsufficientFunds — purchase debits must never
// be clamped down to the available balance.
func (service *LedgerService) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: debit amount must be non-negative", ErrInvalidInput)
	}

	var balance int64
	err := service.store.Atomic(ctx, userID, func(tx store.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.UserCoins < amount {
			return ErrInsufficientFunds
		}
		balance = user.UserCoins - amount
		return tx.Users().AddCoins(ctx, userID, -amount)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Adjust applies an external correction. "subtract" clamps at zero rather
// than failing — corrections shrink to fit, unlike purchase debits.
func (service *LedgerService) Adjust(ctx context.Context, userID string, amount int64, operation string) (int64, error) {
	switch operation {
	case CoinOperationAdd:
		return service.Credit(ctx, userID, amount)

	case CoinOperationSubtract:
		if amount < 0 {
			return 0, fmt.Errorf("%w: subtract amount must be non-negative", ErrInvalidInput)
		}
		var balance int64
		err := service.store.Atomic(ctx, userID, func(tx store.Store) error {
			user, err := tx.Users().GetByID(ctx, userID)
			if err != nil {
				return err
			}
			delta := amount
			if delta > user.UserCoins {
				delta = user.UserCoins
			}
			balance = user.UserCoins - delta
			return tx.Users().AddCoins(ctx, userID, -delta)
		})
		if err != nil {
			return 0, err
		}
		return balance, nil

	case CoinOperationSet:
		if amount < 0 {
			return 0, fmt.Errorf("%w: balance cannot be set negative", ErrInvalidInput)
		}
		err := service.store.Atomic(ctx, userID, func(tx store.Store) error {
			if _, err := tx.Users().GetByID(ctx, userID); err != nil {
				return err
			}
			return tx.Users().SetCoins(ctx, userID, amount)
		})
		if err != nil {
			return 0, err
		}
		return amount, nil

	default:
		return 0, fmt.Errorf("%w: unknown coin operation %q", ErrInvalidInput, operation)
	}
}

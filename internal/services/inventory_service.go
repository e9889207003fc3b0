package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
	"github.com/rs/zerolog"
)

// PurchaseOrder describes the catalog item being bought. The catalog itself
// lives client-side; the server trusts the validated item descriptor.
type PurchaseOrder struct {
	ItemID       string
	ItemType     string
	ItemName     string
	Price        int64
	AutoActivate bool
}

type PurchaseResult struct {
	ItemID         string `json:"itemId"`
	RemainingCoins int64  `json:"remainingCoins"`
	ThemeActivated bool   `json:"themeActivated"`
}

// InventoryService handles cosmetic purchases and theme activation. Funds
// are checked before ownership so an affordable re-purchase reports
// "already owned" rather than masking the duplicate behind a balance error.
type InventoryService struct {
	store  store.Store
	logger zerolog.Logger
}

func NewInventoryService(storage store.Store, logger zerolog.Logger) *InventoryService {
	return &InventoryService{store: storage, logger: logger}
}

func (service *InventoryService) List(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	return service.store.Inventory().ListByUser(ctx, userID)
}

// Purchase debits the price and records ownership in one atomic unit.
// Non-theme items are stored active immediately since nothing about them is
// mutually exclusive. Themes start inactive unless the buyer is still on the
// default theme or explicitly asked for activation; that is the only path by
// which a purchase also switches the active theme.
func (service *InventoryService) Purchase(ctx context.Context, userID string, order PurchaseOrder) (PurchaseResult, error) {
	if order.ItemID == "" || !models.IsValidItemType(order.ItemType) || order.Price < 0 {
		return PurchaseResult{}, fmt.Errorf("%w: bad purchase order", ErrInvalidInput)
	}

	isTheme := order.ItemType == models.ItemTypeTheme

	var result PurchaseResult
	err := service.store.Atomic(ctx, userID, func(tx store.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.UserCoins < order.Price {
			return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, user.UserCoins, order.Price)
		}

		owned, err := tx.Inventory().Owned(ctx, userID, order.ItemID)
		if err != nil {
			return err
		}
		if owned {
			return ErrAlreadyOwned
		}

		activateNow := isTheme && (user.UserTheme == models.DefaultTheme || order.AutoActivate)

		// All reads precede the first write: the doc adapter buffers writes
		// until the unit commits.
		var activeThemes []string
		if activateNow {
			activeThemes, err = activeThemeItemIDs(ctx, tx, userID)
			if err != nil {
				return err
			}
		}

		item := models.InventoryItem{
			ID:         uuid.NewString(),
			UserID:     userID,
			ItemID:     order.ItemID,
			ItemType:   order.ItemType,
			ItemName:   order.ItemName,
			Price:      order.Price,
			IsActive:   !isTheme || activateNow,
			AcquiredAt: time.Now().UTC(),
		}

		if err := tx.Users().AddCoins(ctx, userID, -order.Price); err != nil {
			return err
		}
		if err := tx.Inventory().Insert(ctx, &item); err != nil {
			return err
		}
		if activateNow {
			if err := switchTheme(ctx, tx, userID, order.ItemID, activeThemes); err != nil {
				return err
			}
		}

		result = PurchaseResult{
			ItemID:         order.ItemID,
			RemainingCoins: user.UserCoins - order.Price,
			ThemeActivated: activateNow,
		}
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	service.logger.Info().
		Str("user_id", userID).
		Str("item_id", order.ItemID).
		Int64("price", order.Price).
		Msg("item purchased")
	return result, nil
}

// Activate switches the user's active theme. The built-in default theme is
// always available and has no inventory row; any other theme must be owned.
func (service *InventoryService) Activate(ctx context.Context, userID string, themeID string) error {
	if themeID == "" {
		return fmt.Errorf("%w: empty theme id", ErrInvalidInput)
	}

	return service.store.Atomic(ctx, userID, func(tx store.Store) error {
		items, err := tx.Inventory().ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		// Ownership must be of a theme-typed item; a decoration with the
		// same id does not qualify.
		ownsTheme := false
		activeThemes := make([]string, 0, 1)
		for _, item := range items {
			if item.ItemType != models.ItemTypeTheme {
				continue
			}
			if item.ItemID == themeID {
				ownsTheme = true
			}
			if item.IsActive {
				activeThemes = append(activeThemes, item.ItemID)
			}
		}
		if themeID != models.DefaultTheme && !ownsTheme {
			return ErrNotOwned
		}
		return switchTheme(ctx, tx, userID, themeID, activeThemes)
	})
}

func activeThemeItemIDs(ctx context.Context, tx store.Store, userID string) ([]string, error) {
	items, err := tx.Inventory().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := make([]string, 0, 1)
	for _, item := range items {
		if item.ItemType == models.ItemTypeTheme && item.IsActive {
			active = append(active, item.ItemID)
		}
	}
	return active, nil
}

// switchTheme deactivates the previously active theme rows, activates the
// chosen one when it has an inventory row, and mirrors the choice onto the
// user profile. The default theme is profile-only.
func switchTheme(ctx context.Context, tx store.Store, userID string, themeID string, activeThemes []string) error {
	for _, itemID := range activeThemes {
		if itemID == themeID {
			continue
		}
		if err := tx.Inventory().SetActiveByItemID(ctx, userID, itemID, false); err != nil {
			return err
		}
	}
	if themeID != models.DefaultTheme {
		if err := tx.Inventory().SetActiveByItemID(ctx, userID, themeID, true); err != nil {
			return err
		}
	}
	return tx.Users().Update(ctx, userID, map[string]any{
		"user_theme": themeID,
		"updated_at": time.Now().UTC(),
	})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
	"github.com/rs/zerolog"
)

// SnapshotInput is the client-reported session shape. Coins and Theme, when
// present, are mirrored onto the authoritative user row; everything else is
// kept verbatim in the snapshot for the next login.
type SnapshotInput struct {
	Coins         *int64
	Theme         string
	Level         *int
	SessionActive *bool
	Telemetry     map[string]any
}

// ActiveThemeView pairs the active theme id with its inventory row, when one
// exists. The default theme has no row.
type ActiveThemeView struct {
	ID      string                `json:"id"`
	Details *models.InventoryItem `json:"details,omitempty"`
}

// CompleteProgress is the login-time rehydration composite.
type CompleteProgress struct {
	User        models.User              `json:"user"`
	Tasks       []models.Task            `json:"tasks"`
	Plants      []models.Plant           `json:"plants"`
	Inventory   []models.InventoryItem   `json:"inventory"`
	ActiveTheme ActiveThemeView          `json:"activeTheme"`
	Snapshot    *models.ProgressSnapshot `json:"progress,omitempty"`
}

// ProgressService maintains the per-user "current" snapshot. The snapshot is
// a cache of the last known session shape, never authoritative: the user row
// stays the source of truth for coins and theme, which is why Save mirrors
// those two fields back onto it.
type ProgressService struct {
	store  store.Store
	logger zerolog.Logger
}

func NewProgressService(storage store.Store, logger zerolog.Logger) *ProgressService {
	return &ProgressService{store: storage, logger: logger}
}

// Save merges the reported shape into the snapshot and refreshes the user's
// last_active_at, all in one atomic unit.
func (service *ProgressService) Save(ctx context.Context, userID string, input SnapshotInput) (models.ProgressSnapshot, error) {
	var saved models.ProgressSnapshot
	err := service.store.Atomic(ctx, userID, func(tx store.Store) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: user %s", ErrProfileNotFound, userID)
			}
			return err
		}

		snapshot, found, err := tx.Progress().Get(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			snapshot = models.ProgressSnapshot{UserID: userID}
		}

		now := time.Now().UTC()
		if input.Coins != nil {
			snapshot.Coins = input.Coins
		}
		if input.Theme != "" {
			snapshot.Theme = input.Theme
		}
		if input.Level != nil {
			snapshot.Level = input.Level
		}
		if input.SessionActive != nil {
			snapshot.SessionActive = *input.SessionActive
		} else {
			snapshot.SessionActive = true
		}
		if len(input.Telemetry) > 0 {
			if snapshot.Telemetry == nil {
				snapshot.Telemetry = make(map[string]any, len(input.Telemetry))
			}
			for key, value := range input.Telemetry {
				snapshot.Telemetry[key] = value
			}
		}
		snapshot.LastSyncAt = &now

		if err := tx.Progress().Upsert(ctx, &snapshot); err != nil {
			return err
		}

		userFields := map[string]any{
			"last_active_at": now,
			"updated_at":     now,
		}
		if input.Coins != nil {
			userFields["user_coins"] = *input.Coins
		}
		if input.Theme != "" {
			userFields["user_theme"] = input.Theme
		}
		if err := tx.Users().Update(ctx, userID, userFields); err != nil {
			return err
		}

		saved = snapshot
		return nil
	})
	if err != nil {
		return models.ProgressSnapshot{}, err
	}
	return saved, nil
}

// LoadComplete assembles the full restore-on-login view.
func (service *ProgressService) LoadComplete(ctx context.Context, userID string) (CompleteProgress, error) {
	user, err := service.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CompleteProgress{}, fmt.Errorf("%w: user %s", ErrProfileNotFound, userID)
		}
		return CompleteProgress{}, err
	}

	tasks, err := service.store.Tasks().ListByUser(ctx, userID)
	if err != nil {
		return CompleteProgress{}, err
	}
	plants, err := service.store.Plants().ListByUser(ctx, userID)
	if err != nil {
		return CompleteProgress{}, err
	}
	items, err := service.store.Inventory().ListByUser(ctx, userID)
	if err != nil {
		return CompleteProgress{}, err
	}

	view := CompleteProgress{
		User:        user,
		Tasks:       tasks,
		Plants:      plants,
		Inventory:   items,
		ActiveTheme: ActiveThemeView{ID: user.UserTheme},
	}
	for index := range items {
		if items[index].ItemType == models.ItemTypeTheme && items[index].ItemID == user.UserTheme {
			view.ActiveTheme.Details = &items[index]
			break
		}
	}

	if snapshot, found, err := service.store.Progress().Get(ctx, userID); err != nil {
		return CompleteProgress{}, err
	} else if found {
		view.Snapshot = &snapshot
	}
	return view, nil
}

// EndSession marks the snapshot inactive and stamps the logout time on the
// user row. Nothing is deleted; the snapshot stays restorable.
func (service *ProgressService) EndSession(ctx context.Context, userID string) error {
	return service.store.Atomic(ctx, userID, func(tx store.Store) error {
		snapshot, found, err := tx.Progress().Get(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			snapshot = models.ProgressSnapshot{UserID: userID}
		}

		now := time.Now().UTC()
		snapshot.SessionActive = false
		snapshot.SessionEndedAt = &now
		snapshot.LastSyncAt = &now

		if err := tx.Progress().Upsert(ctx, &snapshot); err != nil {
			return err
		}
		return tx.Users().Update(ctx, userID, map[string]any{
			"last_logout_at": now,
			"updated_at":     now,
		})
	})
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
	"github.com/rs/zerolog"
)

// PrimaryPlant is the user's oldest plant. ListByUser returns plants in
// creation order, so the primary is simply the first entry.
func PrimaryPlant(plants []models.Plant) (models.Plant, bool) {
	if len(plants) == 0 {
		return models.Plant{}, false
	}
	return plants[0], true
}

// PlantService manages the growth tracker. Growth state is a bare counter of
// completed tasks; visual stages derive from it client-side.
type PlantService struct {
	store  store.Store
	logger zerolog.Logger
}

func NewPlantService(storage store.Store, logger zerolog.Logger) *PlantService {
	return &PlantService{store: storage, logger: logger}
}

func (service *PlantService) Create(ctx context.Context, userID string, name string) (models.Plant, error) {
	now := time.Now().UTC()
	plant := models.Plant{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           name,
		TasksCompleted: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := service.store.Plants().Insert(ctx, &plant); err != nil {
		return models.Plant{}, err
	}
	return plant, nil
}

func (service *PlantService) List(ctx context.Context, userID string) ([]models.Plant, error) {
	return service.store.Plants().ListByUser(ctx, userID)
}

// IncrementPrimary adds one growth tick to the primary plant. A user with no
// plants is a logged no-op, not an error.
func (service *PlantService) IncrementPrimary(ctx context.Context, userID string) error {
	return service.store.Atomic(ctx, userID, func(tx store.Store) error {
		plants, err := tx.Plants().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		primary, ok := PrimaryPlant(plants)
		if !ok {
			service.logger.Warn().
				Str("user_id", userID).
				Msg("growth tick requested but user has no plants")
			return nil
		}
		return tx.Plants().AddTasksCompleted(ctx, userID, primary.ID, 1)
	})
}

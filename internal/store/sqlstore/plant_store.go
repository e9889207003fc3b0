package sqlstore

import (
	"context"
	"time"

	"github.com/projectecho/server/internal/models"
	"gorm.io/gorm"
)

type plantStore struct {
	database *gorm.DB
}

func (repo *plantStore) Insert(ctx context.Context, plant *models.Plant) error {
	return mapError(repo.database.WithContext(ctx).Create(plant).Error)
}

func (repo *plantStore) ListByUser(ctx context.Context, userID string) ([]models.Plant, error) {
	plants := make([]models.Plant, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&plants).Error; err != nil {
		return nil, mapError(err)
	}
	return plants, nil
}

func (repo *plantStore) AddTasksCompleted(ctx context.Context, userID string, plantID string, delta int64) error {
	return mapError(repo.database.WithContext(ctx).Model(&models.Plant{}).
		Where("id = ? AND user_id = ?", plantID, userID).
		Updates(map[string]any{
			"tasks_completed": gorm.Expr("tasks_completed + ?", delta),
			"updated_at":      time.Now().UTC(),
		}).Error)
}

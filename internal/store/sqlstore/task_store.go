package sqlstore

import (
	"context"

	"github.com/projectecho/server/internal/models"
	"gorm.io/gorm"
)

type taskStore struct {
	database *gorm.DB
}

func (repo *taskStore) Insert(ctx context.Context, task *models.Task) error {
	return mapError(repo.database.WithContext(ctx).Create(task).Error)
}

func (repo *taskStore) GetByID(ctx context.Context, userID string, taskID string) (models.Task, error) {
	var task models.Task
	if err := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).Error; err != nil {
		return models.Task{}, mapError(err)
	}
	return task, nil
}

func (repo *taskStore) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, mapError(err)
	}
	return tasks, nil
}

func (repo *taskStore) Update(ctx context.Context, userID string, taskID string, fields map[string]any) error {
	return mapError(repo.database.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(fields).Error)
}

func (repo *taskStore) Delete(ctx context.Context, userID string, taskID string) error {
	return mapError(repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&models.Task{}).Error)
}

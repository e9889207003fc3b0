package sqlstore

import (
	"context"
	"errors"

	"github.com/projectecho/server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type healthStore struct {
	database *gorm.DB
}

func (repo *healthStore) Get(ctx context.Context, userID string, date string) (models.HealthRecord, bool, error) {
	var record models.HealthRecord
	err := repo.database.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HealthRecord{}, false, nil
	}
	if err != nil {
		return models.HealthRecord{}, false, mapError(err)
	}
	return record, true, nil
}

func (repo *healthStore) Upsert(ctx context.Context, record *models.HealthRecord) error {
	return mapError(repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"calories_consumed", "calories_goal",
			"water_glasses", "water_goal",
			"exercise_minutes", "exercise_goal",
			"sleep_hours", "sleep_goal",
			"updated_at",
		}),
	}).Create(record).Error)
}

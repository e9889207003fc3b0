package sqlstore

import (
	"context"
	"errors"

	"github.com/projectecho/server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type progressStore struct {
	database *gorm.DB
}

func (repo *progressStore) Get(ctx context.Context, userID string) (models.ProgressSnapshot, bool, error) {
	var snapshot models.ProgressSnapshot
	err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProgressSnapshot{}, false, nil
	}
	if err != nil {
		return models.ProgressSnapshot{}, false, mapError(err)
	}
	return snapshot, true, nil
}

func (repo *progressStore) Upsert(ctx context.Context, snapshot *models.ProgressSnapshot) error {
	return mapError(repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(snapshot).Error)
}

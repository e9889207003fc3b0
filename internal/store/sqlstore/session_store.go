package sqlstore

import (
	"context"
	"time"

	"github.com/projectecho/server/internal/models"
	"gorm.io/gorm"
)

type sessionStore struct {
	database *gorm.DB
}

func (repo *sessionStore) Insert(ctx context.Context, session *models.Session) error {
	return mapError(repo.database.WithContext(ctx).Create(session).Error)
}

func (repo *sessionStore) GetByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	var session models.Session
	if err := repo.database.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&session).Error; err != nil {
		return models.Session{}, mapError(err)
	}
	return session, nil
}

func (repo *sessionStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return mapError(repo.database.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&models.Session{}).Error)
}

func (repo *sessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.database.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.Session{})
	if result.Error != nil {
		return 0, mapError(result.Error)
	}
	return result.RowsAffected, nil
}

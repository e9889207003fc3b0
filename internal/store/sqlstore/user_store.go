package sqlstore

import (
	"context"
	"time"

	"github.com/projectecho/server/internal/models"
	"gorm.io/gorm"
)

type userStore struct {
	database *gorm.DB
}

func (repo *userStore) Insert(ctx context.Context, user *models.User) error {
	return mapError(repo.database.WithContext(ctx).Create(user).Error)
}

func (repo *userStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return models.User{}, mapError(err)
	}
	return user, nil
}

func (repo *userStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).
		Where("lower(trim(email)) = ?", email).
		First(&user).Error; err != nil {
		return models.User{}, mapError(err)
	}
	return user, nil
}

func (repo *userStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var matched int64
	if err := repo.database.WithContext(ctx).Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, mapError(err)
	}
	return matched > 0, nil
}

func (repo *userStore) Update(ctx context.Context, userID string, fields map[string]any) error {
	return mapError(repo.database.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(fields).Error)
}

func (repo *userStore) AddCoins(ctx context.Context, userID string, delta int64) error {
	return mapError(repo.database.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"user_coins": gorm.Expr("user_coins + ?", delta),
			"updated_at": time.Now().UTC(),
		}).Error)
}

func (repo *userStore) SetCoins(ctx context.Context, userID string, balance int64) error {
	return mapError(repo.database.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"user_coins": balance,
			"updated_at": time.Now().UTC(),
		}).Error)
}

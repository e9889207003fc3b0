package sqlstore

import (
	"context"

	"github.com/projectecho/server/internal/models"
	"gorm.io/gorm"
)

type inventoryStore struct {
	database *gorm.DB
}

func (repo *inventoryStore) Insert(ctx context.Context, item *models.InventoryItem) error {
	return mapError(repo.database.WithContext(ctx).Create(item).Error)
}

func (repo *inventoryStore) ListByUser(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	items := make([]models.InventoryItem, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("acquired_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

func (repo *inventoryStore) Owned(ctx context.Context, userID string, itemID string) (bool, error) {
	var matched int64
	if err := repo.database.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&matched).Error; err != nil {
		return false, mapError(err)
	}
	return matched > 0, nil
}

func (repo *inventoryStore) SetActiveByItemID(ctx context.Context, userID string, itemID string, active bool) error {
	return mapError(repo.database.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Update("is_active", active).Error)
}

package docstore

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/projectecho/server/internal/models"
)

type inventoryStore struct {
	reader *redis.Client
	writer redis.Cmdable
}

func encodeInventoryItem(item *models.InventoryItem) (map[string]any, error) {
	return encodeFields(map[string]any{
		"id":          item.ID,
		"user_id":     item.UserID,
		"item_id":     item.ItemID,
		"item_type":   item.ItemType,
		"item_name":   item.ItemName,
		"price":       item.Price,
		"is_active":   item.IsActive,
		"acquired_at": item.AcquiredAt,
	})
}

func decodeInventoryItem(raw map[string]string) models.InventoryItem {
	return models.InventoryItem{
		ID:         raw["id"],
		UserID:     raw["user_id"],
		ItemID:     raw["item_id"],
		ItemType:   raw["item_type"],
		ItemName:   raw["item_name"],
		Price:      parseInt64(raw["price"]),
		IsActive:   parseBool(raw["is_active"]),
		AcquiredAt: parseTime(raw["acquired_at"]),
	}
}

func (repo *inventoryStore) Insert(ctx context.Context, item *models.InventoryItem) error {
	fields, err := encodeInventoryItem(item)
	if err != nil {
		return err
	}
	repo.writer.HSet(ctx, itemKey(item.UserID, item.ItemID), fields)
	err = repo.writer.ZAdd(ctx, inventoryIndexKey(item.UserID), &redis.Z{
		Score:  float64(item.AcquiredAt.UnixNano()),
		Member: item.ItemID,
	}).Err()
	return wrapUnavailable(err)
}

func (repo *inventoryStore) ListByUser(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	itemIDs, err := repo.reader.ZRevRange(ctx, inventoryIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, wrapUnavailable(err)
	}

	items := make([]models.InventoryItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		raw, err := repo.reader.HGetAll(ctx, itemKey(userID, itemID)).Result()
		if err != nil {
			return nil, wrapUnavailable(err)
		}
		if len(raw) == 0 {
			continue
		}
		items = append(items, decodeInventoryItem(raw))
	}
	return items, nil
}

func (repo *inventoryStore) Owned(ctx context.Context, userID string, itemID string) (bool, error) {
	matched, err := repo.reader.Exists(ctx, itemKey(userID, itemID)).Result()
	if err != nil {
		return false, wrapUnavailable(err)
	}
	return matched > 0, nil
}

func (repo *inventoryStore) SetActiveByItemID(ctx context.Context, userID string, itemID string, active bool) error {
	value, _ := encodeValue(active)
	return wrapUnavailable(repo.writer.HSet(ctx, itemKey(userID, itemID), "is_active", value).Err())
}

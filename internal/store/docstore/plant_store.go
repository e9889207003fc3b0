package docstore

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/projectecho/server/internal/models"
)

type plantStore struct {
	reader *redis.Client
	writer redis.Cmdable
}

func encodePlant(plant *models.Plant) (map[string]any, error) {
	return encodeFields(map[string]any{
		"id":              plant.ID,
		"user_id":         plant.UserID,
		"name":            plant.Name,
		"tasks_completed": plant.TasksCompleted,
		"created_at":      plant.CreatedAt,
		"updated_at":      plant.UpdatedAt,
	})
}

func decodePlant(raw map[string]string) models.Plant {
	return models.Plant{
		ID:             raw["id"],
		UserID:         raw["user_id"],
		Name:           raw["name"],
		TasksCompleted: parseInt64(raw["tasks_completed"]),
		CreatedAt:      parseTime(raw["created_at"]),
		UpdatedAt:      parseTime(raw["updated_at"]),
	}
}

func (repo *plantStore) Insert(ctx context.Context, plant *models.Plant) error {
	fields, err := encodePlant(plant)
	if err != nil {
		return err
	}
	repo.writer.HSet(ctx, plantKey(plant.UserID, plant.ID), fields)
	err = repo.writer.ZAdd(ctx, plantsIndexKey(plant.UserID), &redis.Z{
		Score:  float64(plant.CreatedAt.UnixNano()),
		Member: plant.ID,
	}).Err()
	return wrapUnavailable(err)
}

// ListByUser walks the index oldest-first; element zero is the primary plant.
func (repo *plantStore) ListByUser(ctx context.Context, userID string) ([]models.Plant, error) {
	plantIDs, err := repo.reader.ZRange(ctx, plantsIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, wrapUnavailable(err)
	}

	plants := make([]models.Plant, 0, len(plantIDs))
	for _, plantID := range plantIDs {
		raw, err := repo.reader.HGetAll(ctx, plantKey(userID, plantID)).Result()
		if err != nil {
			return nil, wrapUnavailable(err)
		}
		if len(raw) == 0 {
			continue
		}
		plants = append(plants, decodePlant(raw))
	}
	return plants, nil
}

func (repo *plantStore) AddTasksCompleted(ctx context.Context, userID string, plantID string, delta int64) error {
	now, _ := encodeValue(nowUTC())
	repo.writer.HIncrBy(ctx, plantKey(userID, plantID), "tasks_completed", delta)
	return wrapUnavailable(repo.writer.HSet(ctx, plantKey(userID, plantID), "updated_at", now).Err())
}

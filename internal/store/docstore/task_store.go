package docstore

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
)

type taskStore struct {
	reader *redis.Client
	writer redis.Cmdable
}

func encodeTask(task *models.Task) (map[string]any, error) {
	return encodeFields(map[string]any{
		"id":              task.ID,
		"user_id":         task.UserID,
		"text":            task.Text,
		"completed":       task.Completed,
		"priority":        task.Priority,
		"category":        task.Category,
		"due_date":        task.DueDate,
		"recurring":       task.Recurring,
		"is_starter_task": task.IsStarterTask,
		"created_at":      task.CreatedAt,
		"updated_at":      task.UpdatedAt,
	})
}

func decodeTask(raw map[string]string) models.Task {
	return models.Task{
		ID:            raw["id"],
		UserID:        raw["user_id"],
		Text:          raw["text"],
		Completed:     parseBool(raw["completed"]),
		Priority:      raw["priority"],
		Category:      raw["category"],
		DueDate:       raw["due_date"],
		Recurring:     raw["recurring"],
		IsStarterTask: parseBool(raw["is_starter_task"]),
		CreatedAt:     parseTime(raw["created_at"]),
		UpdatedAt:     parseTime(raw["updated_at"]),
	}
}

func (repo *taskStore) Insert(ctx context.Context, task *models.Task) error {
	fields, err := encodeTask(task)
	if err != nil {
		return err
	}
	repo.writer.HSet(ctx, taskKey(task.UserID, task.ID), fields)
	err = repo.writer.ZAdd(ctx, tasksIndexKey(task.UserID), &redis.Z{
		Score:  float64(task.CreatedAt.UnixNano()),
		Member: task.ID,
	}).Err()
	return wrapUnavailable(err)
}

func (repo *taskStore) GetByID(ctx context.Context, userID string, taskID string) (models.Task, error) {
	raw, err := repo.reader.HGetAll(ctx, taskKey(userID, taskID)).Result()
	if err != nil {
		return models.Task{}, wrapUnavailable(err)
	}
	if len(raw) == 0 {
		return models.Task{}, store.ErrNotFound
	}
	return decodeTask(raw), nil
}

// ListByUser walks the index newest-first and loads each task hash.
func (repo *taskStore) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	taskIDs, err := repo.reader.ZRevRange(ctx, tasksIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, wrapUnavailable(err)
	}

	tasks := make([]models.Task, 0, len(taskIDs))
	for _, taskID := range taskIDs {
		raw, err := repo.reader.HGetAll(ctx, taskKey(userID, taskID)).Result()
		if err != nil {
			return nil, wrapUnavailable(err)
		}
		if len(raw) == 0 {
			continue
		}
		tasks = append(tasks, decodeTask(raw))
	}
	return tasks, nil
}

func (repo *taskStore) Update(ctx context.Context, userID string, taskID string, fields map[string]any) error {
	encoded, err := encodeFields(fields)
	if err != nil {
		return err
	}
	return wrapUnavailable(repo.writer.HSet(ctx, taskKey(userID, taskID), encoded).Err())
}

func (repo *taskStore) Delete(ctx context.Context, userID string, taskID string) error {
	repo.writer.Del(ctx, taskKey(userID, taskID))
	return wrapUnavailable(repo.writer.ZRem(ctx, tasksIndexKey(userID), taskID).Err())
}

package docstore

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/projectecho/server/internal/models"
)

type healthStore struct {
	reader *redis.Client
	writer redis.Cmdable
}

func encodeHealthRecord(record *models.HealthRecord) (map[string]any, error) {
	return encodeFields(map[string]any{
		"user_id":           record.UserID,
		"date":              record.Date,
		"calories_consumed": record.CaloriesConsumed,
		"calories_goal":     record.CaloriesGoal,
		"water_glasses":     record.WaterGlasses,
		"water_goal":        record.WaterGoal,
		"exercise_minutes":  record.ExerciseMinutes,
		"exercise_goal":     record.ExerciseGoal,
		"sleep_hours":       record.SleepHours,
		"sleep_goal":        record.SleepGoal,
		"updated_at":        record.UpdatedAt,
	})
}

func decodeHealthRecord(raw map[string]string) models.HealthRecord {
	return models.HealthRecord{
		UserID:           raw["user_id"],
		Date:             raw["date"],
		CaloriesConsumed: parseInt(raw["calories_consumed"]),
		CaloriesGoal:     parseInt(raw["calories_goal"]),
		WaterGlasses:     parseInt(raw["water_glasses"]),
		WaterGoal:        parseInt(raw["water_goal"]),
		ExerciseMinutes:  parseInt(raw["exercise_minutes"]),
		ExerciseGoal:     parseInt(raw["exercise_goal"]),
		SleepHours:       parseFloat(raw["sleep_hours"]),
		SleepGoal:        parseFloat(raw["sleep_goal"]),
		UpdatedAt:        parseTime(raw["updated_at"]),
	}
}

func (repo *healthStore) Get(ctx context.Context, userID string, date string) (models.HealthRecord, bool, error) {
	raw, err := repo.reader.HGetAll(ctx, healthKey(userID, date)).Result()
	if err != nil {
		return models.HealthRecord{}, false, wrapUnavailable(err)
	}
	if len(raw) == 0 {
		return models.HealthRecord{}, false, nil
	}
	return decodeHealthRecord(raw), true, nil
}

func (repo *healthStore) Upsert(ctx context.Context, record *models.HealthRecord) error {
	fields, err := encodeHealthRecord(record)
	if err != nil {
		return err
	}
	return wrapUnavailable(repo.writer.HSet(ctx, healthKey(record.UserID, record.Date), fields).Err())
}

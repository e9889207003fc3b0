package docstore

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/projectecho/server/internal/models"
)

type progressStore struct {
	reader *redis.Client
	writer redis.Cmdable
}

func encodeProgressSnapshot(snapshot *models.ProgressSnapshot) (map[string]any, error) {
	telemetry := ""
	if snapshot.Telemetry != nil {
		raw, err := json.Marshal(snapshot.Telemetry)
		if err != nil {
			return nil, err
		}
		telemetry = string(raw)
	}
	return encodeFields(map[string]any{
		"user_id":          snapshot.UserID,
		"coins":            snapshot.Coins,
		"theme":            snapshot.Theme,
		"level":            snapshot.Level,
		"session_active":   snapshot.SessionActive,
		"telemetry":        telemetry,
		"last_sync_at":     snapshot.LastSyncAt,
		"session_ended_at": snapshot.SessionEndedAt,
	})
}

func decodeProgressSnapshot(raw map[string]string) models.ProgressSnapshot {
	return models.ProgressSnapshot{
		UserID:         raw["user_id"],
		Coins:          parseInt64Ptr(raw["coins"]),
		Theme:          raw["theme"],
		Level:          parseIntPtr(raw["level"]),
		SessionActive:  parseBool(raw["session_active"]),
		Telemetry:      parseAnyMap(raw["telemetry"]),
		LastSyncAt:     parseTimePtr(raw["last_sync_at"]),
		SessionEndedAt: parseTimePtr(raw["session_ended_at"]),
	}
}

func (repo *progressStore) Get(ctx context.Context, userID string) (models.ProgressSnapshot, bool, error) {
	raw, err := repo.reader.HGetAll(ctx, progressKey(userID)).Result()
	if err != nil {
		return models.ProgressSnapshot{}, false, wrapUnavailable(err)
	}
	if len(raw) == 0 {
		return models.ProgressSnapshot{}, false, nil
	}
	return decodeProgressSnapshot(raw), true, nil
}

func (repo *progressStore) Upsert(ctx context.Context, snapshot *models.ProgressSnapshot) error {
	fields, err := encodeProgressSnapshot(snapshot)
	if err != nil {
		return err
	}
	return wrapUnavailable(repo.writer.HSet(ctx, progressKey(snapshot.UserID), fields).Err())
}

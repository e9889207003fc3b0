package docstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
)

type sessionStore struct {
	reader *redis.Client
	writer redis.Cmdable
}

func encodeSession(session *models.Session) (map[string]any, error) {
	return encodeFields(map[string]any{
		"id":         session.ID,
		"user_id":    session.UserID,
		"token_hash": session.TokenHash,
		"expires_at": session.ExpiresAt,
		"created_at": session.CreatedAt,
	})
}

func decodeSession(raw map[string]string) models.Session {
	return models.Session{
		ID:        raw["id"],
		UserID:    raw["user_id"],
		TokenHash: raw["token_hash"],
		ExpiresAt: parseTime(raw["expires_at"]),
		CreatedAt: parseTime(raw["created_at"]),
	}
}

func (repo *sessionStore) Insert(ctx context.Context, session *models.Session) error {
	fields, err := encodeSession(session)
	if err != nil {
		return err
	}
	repo.writer.HSet(ctx, sessionKey(session.TokenHash), fields)
	// Redis expires the key for us; DeleteExpired below is a no-op here.
	return wrapUnavailable(repo.writer.ExpireAt(ctx, sessionKey(session.TokenHash), session.ExpiresAt).Err())
}

func (repo *sessionStore) GetByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	raw, err := repo.reader.HGetAll(ctx, sessionKey(tokenHash)).Result()
	if err != nil {
		return models.Session{}, wrapUnavailable(err)
	}
	if len(raw) == 0 {
		return models.Session{}, store.ErrNotFound
	}
	return decodeSession(raw), nil
}

func (repo *sessionStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return wrapUnavailable(repo.writer.Del(ctx, sessionKey(tokenHash)).Err())
}

func (repo *sessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	_ = now
	return 0, nil
}

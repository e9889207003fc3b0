package docstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
)

type userStore struct {
	reader   *redis.Client
	writer   redis.Cmdable
	inAtomic bool
}

func encodeUser(user *models.User) (map[string]any, error) {
	goals, err := json.Marshal(user.Goals)
	if err != nil {
		return nil, err
	}
	return encodeFields(map[string]any{
		"id":             user.ID,
		"email":          user.Email,
		"password_hash":  user.PasswordHash,
		"name":           user.Name,
		"user_theme":     user.UserTheme,
		"user_coins":     user.UserCoins,
		"goals":          string(goals),
		"created_at":     user.CreatedAt,
		"updated_at":     user.UpdatedAt,
		"last_active_at": user.LastActiveAt,
		"last_logout_at": user.LastLogoutAt,
	})
}

func decodeUser(raw map[string]string) models.User {
	return models.User{
		ID:           raw["id"],
		Email:        raw["email"],
		PasswordHash: raw["password_hash"],
		Name:         raw["name"],
		UserTheme:    raw["user_theme"],
		UserCoins:    parseInt64(raw["user_coins"]),
		Goals:        parseStringSlice(raw["goals"]),
		CreatedAt:    parseTime(raw["created_at"]),
		UpdatedAt:    parseTime(raw["updated_at"]),
		LastActiveAt: parseTimePtr(raw["last_active_at"]),
		LastLogoutAt: parseTimePtr(raw["last_logout_at"]),
	}
}

func (repo *userStore) Insert(ctx context.Context, user *models.User) error {
	fields, err := encodeUser(user)
	if err != nil {
		return err
	}

	// The email claim goes through the live client even inside a buffered
	// unit: per-user locks are keyed on the new user's id, so two concurrent
	// registrations of the same email hold different locks and only an
	// immediate SetNX can decide the race. The claim commits even if the
	// surrounding unit later aborts; registration is the only writer of
	// email keys.
	claimed, err := repo.reader.SetNX(ctx, emailKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return wrapUnavailable(err)
	}
	if !claimed {
		return store.ErrConflict
	}

	if err := repo.writer.HSet(ctx, userKey(user.ID), fields).Err(); err != nil && !repo.inAtomic {
		return wrapUnavailable(err)
	}
	return nil
}

func (repo *userStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	raw, err := repo.reader.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return models.User{}, wrapUnavailable(err)
	}
	if len(raw) == 0 {
		return models.User{}, store.ErrNotFound
	}
	return decodeUser(raw), nil
}

func (repo *userStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	userID, err := repo.reader.Get(ctx, emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, wrapUnavailable(err)
	}
	return repo.GetByID(ctx, userID)
}

func (repo *userStore) EmailExists(ctx context.Context, email string) (bool, error) {
	matched, err := repo.reader.Exists(ctx, emailKey(email)).Result()
	if err != nil {
		return false, wrapUnavailable(err)
	}
	return matched > 0, nil
}

func (repo *userStore) Update(ctx context.Context, userID string, fields map[string]any) error {
	encoded, err := encodeFields(fields)
	if err != nil {
		return err
	}
	if err := repo.writer.HSet(ctx, userKey(userID), encoded).Err(); err != nil && !repo.inAtomic {
		return wrapUnavailable(err)
	}
	return nil
}

func (repo *userStore) AddCoins(ctx context.Context, userID string, delta int64) error {
	now, _ := encodeValue(nowUTC())
	repo.writer.HIncrBy(ctx, userKey(userID), "user_coins", delta)
	if err := repo.writer.HSet(ctx, userKey(userID), "updated_at", now).Err(); err != nil && !repo.inAtomic {
		return wrapUnavailable(err)
	}
	return nil
}

func (repo *userStore) SetCoins(ctx context.Context, userID string, balance int64) error {
	now, _ := encodeValue(nowUTC())
	if err := repo.writer.HSet(ctx, userKey(userID),
		"user_coins", balance,
		"updated_at", now,
	).Err(); err != nil && !repo.inAtomic {
		return wrapUnavailable(err)
	}
	return nil
}

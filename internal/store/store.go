// Package store defines the persistence contract the Echo core runs against.
// Two adapters satisfy it: sqlstore (GORM over SQLite) and docstore (Redis
// hashes with per-user collection indexes). Services never touch a backend
// directly.
package store

import (
	"context"
	"time"

	"github.com/projectecho/server/internal/models"
)

// Store groups the per-entity sub-stores plus the atomic-unit runner.
type Store interface {
	Users() UserStore
	Tasks() TaskStore
	Plants() PlantStore
	Inventory() InventoryStore
	Health() HealthStore
	Progress() ProgressStore
	Sessions() SessionStore

	// Atomic runs fn against a store whose writes apply as one unit scoped to
	// a single user's aggregate. Writes are blind: inside fn, perform every
	// read before the first write. The sql adapter maps this onto a database
	// transaction; the doc adapter serializes on a per-user lock and flushes
	// one command batch, so other readers never observe a partial write.
	Atomic(ctx context.Context, userID string, fn func(Store) error) error
}

// UserStore owns the authoritative user row. Update accepts the snake_case
// column names shared by both adapters. AddCoins and SetCoins also refresh
// updated_at; balance guards live in the ledger service, not here.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, userID string, fields map[string]any) error
	AddCoins(ctx context.Context, userID string, delta int64) error
	SetCoins(ctx context.Context, userID string, balance int64) error
}

// TaskStore lists newest-first, matching what clients render.
type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, userID string, taskID string) (models.Task, error)
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	Update(ctx context.Context, userID string, taskID string, fields map[string]any) error
	Delete(ctx context.Context, userID string, taskID string) error
}

// PlantStore lists oldest-first; the first element is the primary plant that
// task completions grow.
type PlantStore interface {
	Insert(ctx context.Context, plant *models.Plant) error
	ListByUser(ctx context.Context, userID string) ([]models.Plant, error)
	AddTasksCompleted(ctx context.Context, userID string, plantID string, delta int64) error
}

type InventoryStore interface {
	Insert(ctx context.Context, item *models.InventoryItem) error
	ListByUser(ctx context.Context, userID string) ([]models.InventoryItem, error)
	Owned(ctx context.Context, userID string, itemID string) (bool, error)
	SetActiveByItemID(ctx context.Context, userID string, itemID string, active bool) error
}

// HealthStore keys records by (user, YYYY-MM-DD). Upsert replaces the whole
// record for that date.
type HealthStore interface {
	Get(ctx context.Context, userID string, date string) (models.HealthRecord, bool, error)
	Upsert(ctx context.Context, record *models.HealthRecord) error
}

// ProgressStore holds the singleton "current" snapshot per user.
type ProgressStore interface {
	Get(ctx context.Context, userID string) (models.ProgressSnapshot, bool, error)
	Upsert(ctx context.Context, snapshot *models.ProgressSnapshot) error
}

type SessionStore interface {
	Insert(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (models.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Package sqlstore is the relational store.Store adapter: GORM over SQLite
// with normalized per-entity tables and embedded forward-only migrations.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/projectecho/server/internal/store"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type SQLStore struct {
	database *gorm.DB
}

// Open creates the database file if needed, applies embedded migrations and
// returns a ready adapter.
func Open(dbPath string) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return New(database), nil
}

func New(database *gorm.DB) *SQLStore {
	return &SQLStore{database: database}
}

// DB exposes the underlying handle for process-lifecycle concerns (closing)
// and tests.
func (adapter *SQLStore) DB() *gorm.DB {
	return adapter.database
}

func (adapter *SQLStore) Users() store.UserStore {
	return &userStore{database: adapter.database}
}

func (adapter *SQLStore) Tasks() store.TaskStore {
	return &taskStore{database: adapter.database}
}

func (adapter *SQLStore) Plants() store.PlantStore {
	return &plantStore{database: adapter.database}
}

func (adapter *SQLStore) Inventory() store.InventoryStore {
	return &inventoryStore{database: adapter.database}
}

func (adapter *SQLStore) Health() store.HealthStore {
	return &healthStore{database: adapter.database}
}

func (adapter *SQLStore) Progress() store.ProgressStore {
	return &progressStore{database: adapter.database}
}

func (adapter *SQLStore) Sessions() store.SessionStore {
	return &sessionStore{database: adapter.database}
}

// Atomic maps the per-user atomic unit onto a database transaction. SQLite's
// single-writer model serializes concurrent units for us.
func (adapter *SQLStore) Atomic(ctx context.Context, userID string, fn func(store.Store) error) error {
	_ = userID
	return adapter.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrConflict
	}
	return err
}

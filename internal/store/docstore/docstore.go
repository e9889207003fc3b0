// Package docstore is the document store.Store adapter. Each user is a Redis
// hash plus child-collection hashes indexed by sorted sets, mirroring a
// per-user document with nested collections. Atomic units buffer their writes
// into a single MULTI/EXEC pipeline, so readers see either none or all of a
// unit's writes — the same contract a document-database batch gives.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/projectecho/server/internal/store"
)

type DocStore struct {
	client   *redis.Client
	writer   redis.Cmdable
	locks    *userLocks
	inAtomic bool
}

// Open connects to Redis and verifies the connection.
func Open(addr string, password string, db int) (*DocStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client), nil
}

func New(client *redis.Client) *DocStore {
	return &DocStore{
		client: client,
		writer: client,
		locks:  newUserLocks(),
	}
}

// Client exposes the underlying connection for process-lifecycle concerns.
func (adapter *DocStore) Client() *redis.Client {
	return adapter.client
}

func (adapter *DocStore) Users() store.UserStore {
	return &userStore{reader: adapter.client, writer: adapter.writer, inAtomic: adapter.inAtomic}
}

func (adapter *DocStore) Tasks() store.TaskStore {
	return &taskStore{reader: adapter.client, writer: adapter.writer}
}

func (adapter *DocStore) Plants() store.PlantStore {
	return &plantStore{reader: adapter.client, writer: adapter.writer}
}

func (adapter *DocStore) Inventory() store.InventoryStore {
	return &inventoryStore{reader: adapter.client, writer: adapter.writer}
}

func (adapter *DocStore) Health() store.HealthStore {
	return &healthStore{reader: adapter.client, writer: adapter.writer}
}

func (adapter *DocStore) Progress() store.ProgressStore {
	return &progressStore{reader: adapter.client, writer: adapter.writer}
}

func (adapter *DocStore) Sessions() store.SessionStore {
	return &sessionStore{reader: adapter.client, writer: adapter.writer}
}

// Atomic serializes on a per-user lock and defers every write into one
// transactional pipeline, executed only if fn succeeds. Reads inside fn go
// straight to Redis, which is why fn must read before it writes: the lock
// keeps other writers of this user out while the unit is being assembled.
func (adapter *DocStore) Atomic(ctx context.Context, userID string, fn func(store.Store) error) error {
	if adapter.inAtomic {
		return fn(adapter)
	}

	unlock := adapter.locks.lock(userID)
	defer unlock()

	pipe := adapter.client.TxPipeline()
	shadow := &DocStore{
		client:   adapter.client,
		writer:   pipe,
		locks:    adapter.locks,
		inAtomic: true,
	}

	if err := fn(shadow); err != nil {
		pipe.Discard()
		return err
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

// wrapUnavailable folds transport failures into the store error taxonomy.
// redis.Nil is a miss, not an outage.
func wrapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
}

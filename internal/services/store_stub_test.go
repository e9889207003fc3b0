package services

import (
	"context"
	"sync"
	"time"

	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
)

// stubStore is an in-memory store.Store for service tests. Atomic applies the
// closure directly; rollback behavior belongs to the adapter tests.
type stubStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	tasks    map[string][]*models.Task
	plants   map[string][]*models.Plant
	items    map[string][]*models.InventoryItem
	health   map[string]map[string]*models.HealthRecord
	progress map[string]*models.ProgressSnapshot
	sessions map[string]*models.Session
}

func newStubStore() *stubStore {
	return &stubStore{
		users:    make(map[string]*models.User),
		tasks:    make(map[string][]*models.Task),
		plants:   make(map[string][]*models.Plant),
		items:    make(map[string][]*models.InventoryItem),
		health:   make(map[string]map[string]*models.HealthRecord),
		progress: make(map[string]*models.ProgressSnapshot),
		sessions: make(map[string]*models.Session),
	}
}

func (stub *stubStore) Users() store.UserStore           { return (*stubUserStore)(stub) }
func (stub *stubStore) Tasks() store.TaskStore           { return (*stubTaskStore)(stub) }
func (stub *stubStore) Plants() store.PlantStore         { return (*stubPlantStore)(stub) }
func (stub *stubStore) Inventory() store.InventoryStore  { return (*stubInventoryStore)(stub) }
func (stub *stubStore) Health() store.HealthStore        { return (*stubHealthStore)(stub) }
func (stub *stubStore) Progress() store.ProgressStore    { return (*stubProgressStore)(stub) }
func (stub *stubStore) Sessions() store.SessionStore     { return (*stubSessionStore)(stub) }

func (stub *stubStore) Atomic(ctx context.Context, userID string, fn func(store.Store) error) error {
	return fn(stub)
}

type stubUserStore stubStore

func (stub *stubUserStore) Insert(ctx context.Context, user *models.User) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, existing := range stub.users {
		if existing.Email == user.Email {
			return store.ErrConflict
		}
	}
	clone := *user
	stub.users[user.ID] = &clone
	return nil
}

func (stub *stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return *user, nil
}

func (stub *stubUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, user := range stub.users {
		if user.Email == email {
			return *user, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (stub *stubUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := stub.GetByEmail(ctx, email)
	if err == store.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (stub *stubUserStore) Update(ctx context.Context, userID string, fields map[string]any) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	user, ok := stub.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			user.Name = value.(string)
		case "user_theme":
			user.UserTheme = value.(string)
		case "user_coins":
			user.UserCoins = toInt64(value)
		case "goals":
			user.Goals = value.([]string)
		case "last_active_at":
			at := value.(time.Time)
			user.LastActiveAt = &at
		case "last_logout_at":
			at := value.(time.Time)
			user.LastLogoutAt = &at
		case "updated_at":
			user.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

func (stub *stubUserStore) AddCoins(ctx context.Context, userID string, delta int64) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	user, ok := stub.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	user.UserCoins += delta
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (stub *stubUserStore) SetCoins(ctx context.Context, userID string, balance int64) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	user, ok := stub.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	user.UserCoins = balance
	user.UpdatedAt = time.Now().UTC()
	return nil
}

type stubTaskStore stubStore

func (stub *stubTaskStore) Insert(ctx context.Context, task *models.Task) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	clone := *task
	stub.tasks[task.UserID] = append(stub.tasks[task.UserID], &clone)
	return nil
}

func (stub *stubTaskStore) GetByID(ctx context.Context, userID string, taskID string) (models.Task, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, task := range stub.tasks[userID] {
		if task.ID == taskID {
			return *task, nil
		}
	}
	return models.Task{}, store.ErrNotFound
}

func (stub *stubTaskStore) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	owned := stub.tasks[userID]
	listed := make([]models.Task, 0, len(owned))
	for index := len(owned) - 1; index >= 0; index-- {
		listed = append(listed, *owned[index])
	}
	return listed, nil
}

func (stub *stubTaskStore) Update(ctx context.Context, userID string, taskID string, fields map[string]any) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, task := range stub.tasks[userID] {
		if task.ID != taskID {
			continue
		}
		for key, value := range fields {
			switch key {
			case "text":
				task.Text = value.(string)
			case "completed":
				task.Completed = value.(bool)
			case "priority":
				task.Priority = value.(string)
			case "category":
				task.Category = value.(string)
			case "due_date":
				task.DueDate = value.(string)
			case "recurring":
				task.Recurring = value.(string)
			case "updated_at":
				task.UpdatedAt = value.(time.Time)
			}
		}
		return nil
	}
	return store.ErrNotFound
}

func (stub *stubTaskStore) Delete(ctx context.Context, userID string, taskID string) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	owned := stub.tasks[userID]
	for index, task := range owned {
		if task.ID == taskID {
			stub.tasks[userID] = append(owned[:index], owned[index+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type stubPlantStore stubStore

func (stub *stubPlantStore) Insert(ctx context.Context, plant *models.Plant) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	clone := *plant
	stub.plants[plant.UserID] = append(stub.plants[plant.UserID], &clone)
	return nil
}

func (stub *stubPlantStore) ListByUser(ctx context.Context, userID string) ([]models.Plant, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	owned := stub.plants[userID]
	listed := make([]models.Plant, 0, len(owned))
	for _, plant := range owned {
		listed = append(listed, *plant)
	}
	return listed, nil
}

func (stub *stubPlantStore) AddTasksCompleted(ctx context.Context, userID string, plantID string, delta int64) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, plant := range stub.plants[userID] {
		if plant.ID == plantID {
			plant.TasksCompleted += delta
			plant.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return store.ErrNotFound
}

type stubInventoryStore stubStore

func (stub *stubInventoryStore) Insert(ctx context.Context, item *models.InventoryItem) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, existing := range stub.items[item.UserID] {
		if existing.ItemID == item.ItemID {
			return store.ErrConflict
		}
	}
	clone := *item
	stub.items[item.UserID] = append(stub.items[item.UserID], &clone)
	return nil
}

func (stub *stubInventoryStore) ListByUser(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	owned := stub.items[userID]
	listed := make([]models.InventoryItem, 0, len(owned))
	for _, item := range owned {
		listed = append(listed, *item)
	}
	return listed, nil
}

func (stub *stubInventoryStore) Owned(ctx context.Context, userID string, itemID string) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, item := range stub.items[userID] {
		if item.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubInventoryStore) SetActiveByItemID(ctx context.Context, userID string, itemID string, active bool) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, item := range stub.items[userID] {
		if item.ItemID == itemID {
			item.IsActive = active
		}
	}
	return nil
}

type stubHealthStore stubStore

func (stub *stubHealthStore) Get(ctx context.Context, userID string, date string) (models.HealthRecord, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	record, ok := stub.health[userID][date]
	if !ok {
		return models.HealthRecord{}, false, nil
	}
	return *record, true, nil
}

func (stub *stubHealthStore) Upsert(ctx context.Context, record *models.HealthRecord) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.health[record.UserID] == nil {
		stub.health[record.UserID] = make(map[string]*models.HealthRecord)
	}
	clone := *record
	stub.health[record.UserID][record.Date] = &clone
	return nil
}

type stubProgressStore stubStore

func (stub *stubProgressStore) Get(ctx context.Context, userID string) (models.ProgressSnapshot, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	snapshot, ok := stub.progress[userID]
	if !ok {
		return models.ProgressSnapshot{}, false, nil
	}
	return *snapshot, true, nil
}

func (stub *stubProgressStore) Upsert(ctx context.Context, snapshot *models.ProgressSnapshot) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	clone := *snapshot
	stub.progress[snapshot.UserID] = &clone
	return nil
}

type stubSessionStore stubStore

func (stub *stubSessionStore) Insert(ctx context.Context, session *models.Session) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if _, exists := stub.sessions[session.TokenHash]; exists {
		return store.ErrConflict
	}
	clone := *session
	stub.sessions[session.TokenHash] = &clone
	return nil
}

func (stub *stubSessionStore) GetByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	session, ok := stub.sessions[tokenHash]
	if !ok {
		return models.Session{}, store.ErrNotFound
	}
	return *session, nil
}

func (stub *stubSessionStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if _, ok := stub.sessions[tokenHash]; !ok {
		return store.ErrNotFound
	}
	delete(stub.sessions, tokenHash)
	return nil
}

func (stub *stubSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	var removed int64
	for hash, session := range stub.sessions {
		if session.Expired(now) {
			delete(stub.sessions, hash)
			removed++
		}
	}
	return removed, nil
}

func toInt64(value any) int64 {
	switch typed := value.(type) {
	case int64:
		return typed
	case int:
		return int64(typed)
	}
	return 0
}

func seedStubUser(stub *stubStore, userID string, coins int64) *models.User {
	now := time.Now().UTC()
	user := &models.User{
		ID:        userID,
		Email:     userID + "@example.com",
		Name:      "Test User",
		UserTheme: models.DefaultTheme,
		UserCoins: coins,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stub.users[userID] = user
	return user
}

func seedStubPlant(stub *stubStore, userID string, plantID string, name string) *models.Plant {
	now := time.Now().UTC()
	plant := &models.Plant{
		ID:        plantID,
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stub.plants[userID] = append(stub.plants[userID], plant)
	return plant
}

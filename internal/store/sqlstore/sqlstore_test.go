package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()

	adapter, err := Open(filepath.Join(t.TempDir(), "echo-store-test.db"))
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	sqlDB, err := adapter.DB().DB()
	if err != nil {
		t.Fatalf("resolve sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return adapter
}

func insertTestUser(t *testing.T, adapter *SQLStore, userID string, email string, coins int64) {
	t.Helper()

	now := time.Now().UTC()
	err := adapter.Users().Insert(context.Background(), &models.User{
		ID:           userID,
		Email:        email,
		PasswordHash: "x",
		Name:         "Test",
		UserTheme:    models.DefaultTheme,
		UserCoins:    coins,
		Goals:        []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
}

func TestOpenAppliesMigrations(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)

	var count int64
	if err := adapter.DB().Table("schema_migrations").Count(&count).Error; err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one applied migration")
	}

	// Re-opening the same file must be a no-op, not a failure.
	if err := applyEmbeddedMigrations(adapter.DB()); err != nil {
		t.Fatalf("re-applying migrations: %v", err)
	}
}

func TestUserEmailLookupIsCaseAndSpaceInsensitive(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)
	insertTestUser(t, adapter, "user-1", " Mixed@Example.COM ", 10)

	user, err := adapter.Users().GetByEmail(context.Background(), "mixed@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("expected user-1, got %q", user.ID)
	}

	exists, err := adapter.Users().EmailExists(context.Background(), "mixed@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists() = %v, %v; want true", exists, err)
	}
}

func TestUserDuplicateEmailMapsToConflict(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)
	insertTestUser(t, adapter, "user-1", "same@example.com", 10)

	now := time.Now().UTC()
	err := adapter.Users().Insert(context.Background(), &models.User{
		ID:           "user-2",
		Email:        "same@example.com",
		PasswordHash: "x",
		Name:         "Other",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMissingRowsMapToNotFound(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)
	ctx := context.Background()

	if _, err := adapter.Users().GetByID(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
	if _, err := adapter.Tasks().GetByID(ctx, "ghost", "no-task"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing task, got %v", err)
	}
	if _, err := adapter.Sessions().GetByTokenHash(ctx, "no-hash"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing session, got %v", err)
	}
}

func TestTaskListNewestFirstAndPlantsOldestFirst(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)
	ctx := context.Background()
	insertTestUser(t, adapter, "user-1", "order@example.com", 10)

	base := time.Now().UTC().Add(-time.Hour)
	for index, id := range []string{"t1", "t2", "t3"} {
		err := adapter.Tasks().Insert(ctx, &models.Task{
			ID:        id,
			UserID:    "user-1",
			Text:      id,
			Priority:  models.PriorityMedium,
			Recurring: models.RecurringNone,
			CreatedAt: base.Add(time.Duration(index) * time.Minute),
			UpdatedAt: base,
		})
		if err != nil {
			t.Fatalf("insert task %s: %v", id, err)
		}
	}
	tasks, err := adapter.Tasks().ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser(tasks) unexpected error: %v", err)
	}
	if len(tasks) != 3 || tasks[0].ID != "t3" || tasks[2].ID != "t1" {
		t.Fatalf("expected newest-first task order, got %+v", tasks)
	}

	for index, id := range []string{"p1", "p2"} {
		err := adapter.Plants().Insert(ctx, &models.Plant{
			ID:        id,
			UserID:    "user-1",
			Name:      id,
			CreatedAt: base.Add(time.Duration(index) * time.Minute),
			UpdatedAt: base,
		})
		if err != nil {
			t.Fatalf("insert plant %s: %v", id, err)
		}
	}
	plants, err := adapter.Plants().ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser(plants) unexpected error: %v", err)
	}
	if len(plants) != 2 || plants[0].ID != "p1" {
		t.Fatalf("expected oldest-first plant order, got %+v", plants)
	}
}

func TestAtomicRollsBackOnError(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)
	ctx := context.Background()
	insertTestUser(t, adapter, "user-1", "rollback@example.com", 10)

	boom := errors.New("boom")
	err := adapter.Atomic(ctx, "user-1", func(tx store.Store) error {
		if err := tx.Users().AddCoins(ctx, "user-1", 100); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the closure error, got %v", err)
	}

	user, err := adapter.Users().GetByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if user.UserCoins != 10 {
		t.Fatalf("expected rollback to 10 coins, got %d", user.UserCoins)
	}
}

func TestHealthUpsertReplacesSameDay(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)
	ctx := context.Background()
	insertTestUser(t, adapter, "user-1", "health@example.com", 10)

	record := models.EmptyHealthRecord("user-1", "2026-08-30")
	record.ID = "h1"
	record.WaterGlasses = 3
	record.UpdatedAt = time.Now().UTC()
	if err := adapter.Health().Upsert(ctx, &record); err != nil {
		t.Fatalf("first Upsert() unexpected error: %v", err)
	}

	record.WaterGlasses = 8
	if err := adapter.Health().Upsert(ctx, &record); err != nil {
		t.Fatalf("second Upsert() unexpected error: %v", err)
	}

	stored, found, err := adapter.Health().Get(ctx, "user-1", "2026-08-30")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v; want found", found, err)
	}
	if stored.WaterGlasses != 8 {
		t.Fatalf("expected replaced value 8, got %d", stored.WaterGlasses)
	}
}

func TestProgressUpsertKeepsSingleton(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)
	ctx := context.Background()
	insertTestUser(t, adapter, "user-1", "snap@example.com", 10)

	coins := int64(5)
	snapshot := models.ProgressSnapshot{UserID: "user-1", Coins: &coins, Theme: "theme_dark"}
	if err := adapter.Progress().Upsert(ctx, &snapshot); err != nil {
		t.Fatalf("first Upsert() unexpected error: %v", err)
	}

	coins = 9
	snapshot.Coins = &coins
	if err := adapter.Progress().Upsert(ctx, &snapshot); err != nil {
		t.Fatalf("second Upsert() unexpected error: %v", err)
	}

	stored, found, err := adapter.Progress().Get(ctx, "user-1")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v; want found", found, err)
	}
	if stored.Coins == nil || *stored.Coins != 9 {
		t.Fatalf("expected singleton replaced with coins 9, got %+v", stored.Coins)
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	t.Parallel()

	adapter := openTestStore(t)
	ctx := context.Background()
	insertTestUser(t, adapter, "user-1", "sess@example.com", 10)

	now := time.Now().UTC()
	sessions := []models.Session{
		{ID: "s1", UserID: "user-1", TokenHash: "h1", ExpiresAt: now.Add(-time.Minute), CreatedAt: now},
		{ID: "s2", UserID: "user-1", TokenHash: "h2", ExpiresAt: now.Add(time.Hour), CreatedAt: now},
	}
	for index := range sessions {
		if err := adapter.Sessions().Insert(ctx, &sessions[index]); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	removed, err := adapter.Sessions().DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired() unexpected error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}
	if _, err := adapter.Sessions().GetByTokenHash(ctx, "h2"); err != nil {
		t.Fatalf("live session must survive, got %v", err)
	}
}

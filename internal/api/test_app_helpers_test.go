package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/services"
	"github.com/projectecho/server/internal/store/sqlstore"
	"github.com/rs/zerolog"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "echo-test.db")
	storage, err := sqlstore.Open(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := storage.DB().DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	logger := zerolog.Nop()
	authService := services.NewAuthService(storage, []byte("test-secret-key"), 4, time.Hour, logger)

	handler := NewHandler(HandlerDeps{
		Auth:      authService,
		Tasks:     services.NewTaskService(storage, logger),
		Ledger:    services.NewLedgerService(storage),
		Inventory: services.NewInventoryService(storage, logger),
		Plants:    services.NewPlantService(storage, logger),
		Progress:  services.NewProgressService(storage, logger),
		Health:    services.NewHealthService(storage),
		Logger:    logger,
	})

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(t *testing.T, method string, path string, token string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) map[string]any {
	t.Helper()

	response, err := app.Test(request, 5000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (body: %s)",
			request.Method, request.URL.Path, wantStatus, response.StatusCode, raw)
	}

	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response body: %v (body: %s)", err, raw)
		}
	}
	return decoded
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	body := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": "secret123",
		"name":     "Test User",
		"goals":    []string{},
	}), fiber.StatusCreated)

	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("expected a token in the register response, got %v", body)
	}
	return token
}

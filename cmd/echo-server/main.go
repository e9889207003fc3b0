package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/projectecho/server/internal/api"
	"github.com/projectecho/server/internal/config"
	"github.com/projectecho/server/internal/security"
	"github.com/projectecho/server/internal/services"
	"github.com/projectecho/server/internal/store"
	"github.com/projectecho/server/internal/store/docstore"
	"github.com/projectecho/server/internal/store/sqlstore"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("config load failed")
	}

	logger := newLogger(cfg)

	location, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		logger.Warn().Str("tz", cfg.TZ).Msg("invalid TZ, falling back to UTC")
		location = time.UTC
	}
	time.Local = location

	storage, err := openStorage(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("storage init failed")
	}

	if cfg.SecretKey == "change_me_in_production" {
		generated, err := security.RandomString(48, security.SecretKeyAlphabet)
		if err != nil {
			logger.Fatal().Err(err).Msg("secret key generation failed")
		}
		cfg.SecretKey = generated
		logger.Warn().Msg("SECRET_KEY not set; generated an ephemeral key, sessions will not survive restarts")
	}

	secretKey := []byte(cfg.SecretKey)
	authService := services.NewAuthService(storage, secretKey, cfg.BcryptCost, cfg.SessionTTL, logger)
	taskService := services.NewTaskService(storage, logger)
	ledgerService := services.NewLedgerService(storage)
	inventoryService := services.NewInventoryService(storage, logger)
	plantService := services.NewPlantService(storage, logger)
	progressService := services.NewProgressService(storage, logger)
	healthService := services.NewHealthService(storage)

	handler := api.NewHandler(api.HandlerDeps{
		Auth:      authService,
		Tasks:     taskService,
		Ledger:    ledgerService,
		Inventory: inventoryService,
		Plants:    plantService,
		Progress:  progressService,
		Health:    healthService,
		Logger:    logger,
	})

	app := fiber.New(fiber.Config{
		AppName:               "Echo",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	api.RegisterRoutes(app, handler)

	sweeper, err := services.NewSessionSweeper(authService, cfg.SweepSpec, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("spec", cfg.SweepSpec).Msg("invalid session sweep spec")
	}
	sweeper.Start()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		sweeper.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logger.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.StorageBackend).
		Msg("echo server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func openStorage(cfg config.Config) (store.Store, error) {
	if cfg.StorageBackend == config.BackendRedis {
		return docstore.Open(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return sqlstore.Open(cfg.DBPath)
}

func newLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

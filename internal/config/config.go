// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	Port           string
	SecretKey      string
	StorageBackend string
	DBPath         string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	BcryptCost     int
	SessionTTL     time.Duration
	SweepSpec      string
	TZ             string
	Debug          bool
}

// Load reads .env when present, then the environment, applying defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "3001"),
		SecretKey:      getEnv("SECRET_KEY", "change_me_in_production"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		DBPath:         getEnv("DB_PATH", filepath.Join("data", "echo.db")),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		BcryptCost:     getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		SessionTTL:     getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		SweepSpec:      getEnv("SESSION_SWEEP_SPEC", "@every 1h"),
		TZ:             getEnv("TZ", "UTC"),
		Debug:          getEnv("DEBUG", "") != "",
	}

	if cfg.StorageBackend != BackendSQLite && cfg.StorageBackend != BackendRedis {
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	return cfg, nil
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

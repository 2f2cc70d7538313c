package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	DefaultDevice     string
	ImportWorkerCount int
	ImportQueueSize   int
	SnapshotHour      int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:jflash.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		DefaultDevice:     envOr("DEFAULT_DEVICE", "default"),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),
		SnapshotHour:      envIntOr("SNAPSHOT_HOUR", 3),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.DefaultDevice == "" {
		return fmt.Errorf("DEFAULT_DEVICE cannot be empty")
	}
	if c.ImportWorkerCount <= 0 {
		return fmt.Errorf("IMPORT_WORKER_COUNT must be positive, got %d", c.ImportWorkerCount)
	}
	if c.ImportQueueSize <= 0 {
		return fmt.Errorf("IMPORT_QUEUE_SIZE must be positive, got %d", c.ImportQueueSize)
	}
	if c.SnapshotHour < 0 || c.SnapshotHour > 23 {
		return fmt.Errorf("SNAPSHOT_HOUR must be between 0 and 23, got %d", c.SnapshotHour)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

package core

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"schedcore/internal/infra/persistence/memory"
	"schedcore/internal/infra/persistence/postgres"
	"schedcore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// StorageConfig selects and parameterizes the persistence backend.
type StorageConfig struct {
	Driver      StorageDriver `env:"SCHEDCORE_STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string        `env:"SCHEDCORE_SQLITE_PATH" envDefault:"schedcore.db"`
	PostgresDSN string        `env:"SCHEDCORE_POSTGRES_DSN"`
}

// LoadStorageConfig reads the backend selection from environment variables.
func LoadStorageConfig() (StorageConfig, error) {
	var cfg StorageConfig
	if err := env.Parse(&cfg); err != nil {
		return StorageConfig{}, fmt.Errorf("parse storage env: %w", err)
	}
	return cfg, nil
}

// OpenPersistentStore constructs the backend named by cfg. The logger receives
// migration warnings emitted while normalizing a persisted snapshot.
func OpenPersistentStore(cfg StorageConfig, engine *RulesEngine, logger *zap.Logger) (PersistentStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Driver {
	case StorageMemory:
		return memory.NewStore(engine), nil
	case StorageSQLite:
		return sqlite.NewStore(cfg.SQLitePath, engine, logger)
	case StoragePostgres:
		return postgres.NewStore(cfg.PostgresDSN, engine, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
}

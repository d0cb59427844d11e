package storage

import (
	"fmt"

	config "github.com/promptlift/cli/config"
	domain "github.com/promptlift/cli/internal/domain"
)

// MaxEvents is the number of usage events each backend retains.
// Older events are evicted first.
const MaxEvents = 500

// NewUsageStore creates a usage store based on the provided configuration
func NewUsageStore(cfg config.LedgerConfig) (domain.UsageStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.SQLite)
	case "postgres":
		return NewPostgresStore(cfg.Postgres)
	case "redis":
		return NewRedisStore(cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported ledger storage type: %s", cfg.Type)
	}
}

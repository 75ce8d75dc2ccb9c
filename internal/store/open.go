package store

import (
	"context"
	"fmt"

	"tenant-portal-svc/internal/config"

	"gorm.io/gorm"
)

// Open builds the store selected by cfg.Store.Driver. db is only used by the
// postgres driver and may be nil otherwise.
func Open(ctx context.Context, cfg *config.Config, db *gorm.DB) (Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres store driver needs a database connection")
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

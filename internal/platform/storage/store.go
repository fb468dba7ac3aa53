package storage

import (
	"context"
	"fmt"

	"writerly/internal/platform/config"
)

// Store is a small string key/value store. It backs the persisted login
// and any other state that must survive between runs.
type Store interface {
	// Get returns apperrors.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Open(cfg config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		return NewRedisStore(cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB, cfg.Storage.RedisPrefix)
	case config.BackendSQLite, "":
		return NewSQLiteStore(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

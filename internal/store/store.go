// Package store persists the job collection as a whole: every backend loads
// and saves the complete ordered list.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raphaelgruber/studioflow/internal/config"
	"github.com/raphaelgruber/studioflow/internal/db"
	"github.com/raphaelgruber/studioflow/internal/models"
)

// Store loads and saves the job collection.
//
// LoadAll on an empty backend returns an empty slice and no error. A backend
// holding malformed data returns whatever it could decode together with an
// error wrapping models.ErrMalformed.
type Store interface {
	LoadAll(ctx context.Context) ([]models.Job, error)
	SaveAll(ctx context.Context, jobs []models.Job) error
	Close(ctx context.Context) error
}

// Open builds the backend selected by cfg.Store.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Store {
	case "", config.StoreFile:
		logger.Debug("using file store", "path", cfg.DataFile)
		return NewFileStore(cfg.DataFile), nil
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreSurreal:
		client, err := db.NewClient(ctx, db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("surrealdb: %w", err)
		}
		return NewSurrealStore(ctx, client)
	case config.StoreRedis:
		return NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		})
	case config.StorePostgres:
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store %q (want file, memory, surrealdb, redis or postgres)", cfg.Store)
	}
}

package storage

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/internal/infrastructure/postgres"
	"github.com/jhoicas/tevo-storefront/pkg/config"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// Open construye el almacenamiento indicado por STORAGE_DRIVER.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: la sesión y los carritos se pierden al reiniciar")
		return NewMemoryStore(), nil
	case config.StorageFile:
		store, err := NewFileStore(afero.NewOsFs(), cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		log.Info().Str("dir", cfg.Storage.Dir).Msg("almacenamiento en archivos")
		return store, nil
	case config.StorageRedis:
		store, err := NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("almacenamiento en Redis")
		return store, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("storage: postgres: %w", err)
		}
		store, err := postgres.NewKVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("almacenamiento en PostgreSQL")
		return store, nil
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}
}

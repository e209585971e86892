// Package repository selects the sales store backend from configuration.
package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/config"
	"github.com/mamadbah2/salesboard/internal/ingest"
	"github.com/mamadbah2/salesboard/internal/repository/memory"
	"github.com/mamadbah2/salesboard/internal/repository/mongodb"
	"github.com/mamadbah2/salesboard/internal/service/sales"
)

// Store is a sales store that can also be refilled by an import.
type Store interface {
	sales.Store
	ingest.Writer
	Close(ctx context.Context) error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*mongodb.SalesRepository)(nil)
)

// Open builds the store named by cfg.Store.Driver. MongoDB collections get
// their indexes ensured before the store is returned.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory sales store, data is lost on exit")
		return memory.NewStore(), nil
	case config.DriverMongoDB:
		repo, err := mongodb.NewSalesRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Collection, logger)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

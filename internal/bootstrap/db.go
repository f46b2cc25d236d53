package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/go-staff-backend/config"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository/memory"
	staffpg "github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository/postgres"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/storage/postgres"
)

// OpenStore returns the repository.Store selected by cfg.Storage. For
// PostgreSQL the embedded schema is applied when cfg.AutoSchema is set.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (repository.Store, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Info("using in-memory storage")
		return memory.NewStore(), nil
	}

	store, err := OpenPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoSchema {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	logger.Info("connected to postgres",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)
	return store, nil
}

// OpenPostgres connects to PostgreSQL without touching the schema.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*staffpg.Store, error) {
	db, err := postgres.NewConnection(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	return staffpg.NewStore(db), nil
}

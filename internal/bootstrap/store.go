package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/BrandishEvents_Go/internal/config"
	"github.com/osse101/BrandishEvents_Go/internal/handler"
	"github.com/osse101/BrandishEvents_Go/internal/store"
	"github.com/osse101/BrandishEvents_Go/internal/store/flatfile"
	"github.com/osse101/BrandishEvents_Go/internal/store/postgres"
	"github.com/osse101/BrandishEvents_Go/internal/store/sqlite"
)

// OpenStore opens the account backend named by cfg.StoreBackend. The pinger
// backs /readyz and is nil for the flat-file backend.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Accounts, handler.Pinger, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		slog.Info(LogMsgStoreOpened, "backend", cfg.StoreBackend, "host", cfg.DBHost, "database", cfg.DBName)
		return postgres.NewAccountStore(pool), pool, nil

	case config.StoreBackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), DirPermission); err != nil {
			return nil, nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info(LogMsgStoreOpened, "backend", cfg.StoreBackend, "path", cfg.SQLitePath)
		return s, s, nil

	case config.StoreBackendFlatFile:
		s, err := flatfile.Open(cfg.FlatFileDir)
		if err != nil {
			return nil, nil, err
		}
		slog.Info(LogMsgStoreOpened, "backend", cfg.StoreBackend, "dir", cfg.FlatFileDir)
		return s, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

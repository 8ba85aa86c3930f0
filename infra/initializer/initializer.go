// Package initializer wires the concrete infrastructure adapters into the
// application dependency struct.
package initializer

import (
	"github.com/TeamSorcerers/app-financeiro-sub000/infra"
	infracache "github.com/TeamSorcerers/app-financeiro-sub000/infra/cache"
	infraeventbus "github.com/TeamSorcerers/app-financeiro-sub000/infra/eventbus"
	infrarepository "github.com/TeamSorcerers/app-financeiro-sub000/infra/repository"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/app"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/cache"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
)

// InitializeDependencies builds every application dependency from config:
// logger, database, unit of work, snapshot cache, and event bus.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return nil, err
	}
	if err := infrarepository.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		return nil, err
	}
	deps.Uow = infrarepository.NewUoW(db)

	var snapshotCache cache.Cache
	if cfg.Redis.URL != "" {
		snapshotCache, err = infracache.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("failed to initialize redis cache", "error", err)
			return nil, err
		}
		logger.Info("using redis snapshot cache")
	} else {
		snapshotCache = infracache.NewMemoryCache()
		logger.Info("using in-memory snapshot cache")
	}
	deps.Cache = snapshotCache

	deps.EventBus = infraeventbus.NewWithMemory(logger)

	return deps, nil
}

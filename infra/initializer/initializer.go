// Package initializer builds the process-wide dependencies from configuration.
package initializer

import (
	"context"
	"fmt"
	"log/slog"

	infracache "github.com/amirasaad/networth/infra/cache"
	"github.com/amirasaad/networth/infra/database"
	infraeventbus "github.com/amirasaad/networth/infra/eventbus"
	infrarepo "github.com/amirasaad/networth/infra/repository"
	"github.com/amirasaad/networth/internal/migrations"
	"github.com/amirasaad/networth/pkg/app"
	"github.com/amirasaad/networth/pkg/cache"
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/eventbus"
	"github.com/amirasaad/networth/pkg/seed"
	"gorm.io/gorm"
)

// InitializeDependencies opens the store, brings the schema up to date,
// seeds the predefined rows and builds the cache and event bus. The
// returned cleanup releases every connection it opened.
func InitializeDependencies(ctx context.Context, cfg *config.App) (
	deps *app.Deps,
	cleanup func(),
	err error,
) {
	logger := setupLogger(cfg.Log)
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	defer func() {
		if err != nil {
			closeAll()
		}
	}()

	db, err := database.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	closers = append(closers, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err = migrateSchema(db, cfg.DB); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	result, err := seed.Run(ctx, uow, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seed predefined data: %w", err)
	}
	logger.Info("Predefined data seeded",
		"currencies", result.Currencies,
		"categories", result.Categories,
		"asset_types", result.AssetTypes,
	)

	rateCache, closeCache := initRateCache(cfg, logger)
	closers = append(closers, closeCache)

	bus, closeBus, err := initEventBus(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeBus)

	return &app.Deps{
		Uow:       uow,
		RateCache: rateCache,
		EventBus:  bus,
		Logger:    logger,
	}, closeAll, nil
}

// Migrate brings the schema of the configured database up to date and
// closes the connection.
func Migrate(cfg *config.App) error {
	logger := setupLogger(cfg.Log)
	db, err := database.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	if err := migrateSchema(db, cfg.DB); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info("Schema is up to date", "driver", cfg.DB.Driver)
	return nil
}

// migrateSchema applies the SQL migrations on postgres and AutoMigrate on
// sqlite, which the SQL files do not target.
func migrateSchema(db *gorm.DB, cfg *config.DB) error {
	if cfg.Driver == "sqlite" {
		return db.AutoMigrate(infrarepo.Models()...)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return migrations.Up(sqlDB)
}

func initRateCache(cfg *config.App, logger *slog.Logger) (cache.RateCache, func()) {
	prefix := "rate:"
	if cfg.RateCache != nil {
		prefix = cfg.RateCache.Prefix
	}
	if cfg.Redis != nil && cfg.Redis.URL != "" {
		rc, err := infracache.NewRedisCache(cfg.Redis.URL, cfg.Redis.KeyPrefix+prefix, logger)
		if err == nil {
			logger.Info("Using Redis rate cache")
			return rc, func() { _ = rc.Close() }
		}
		logger.Warn("Redis rate cache unavailable, using memory cache", "error", err)
	}
	mc := infracache.NewMemoryCache(infracache.DefaultCleanupInterval)
	return mc, mc.Close
}

func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, func(), error) {
	driver := "memory"
	if cfg.EventBus != nil && cfg.EventBus.Driver != "" {
		driver = cfg.EventBus.Driver
	}
	switch driver {
	case "memory":
		return infraeventbus.NewWithMemory(logger), func() {}, nil
	case "redis":
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, nil, fmt.Errorf("event bus driver redis requires REDIS_URL")
		}
		bus, err := infraeventbus.NewWithRedis(
			cfg.Redis.URL,
			cfg.EventBus.Stream,
			cfg.EventBus.Group,
			events.Factories(),
			logger,
		)
		if err != nil {
			logger.Warn("Redis event bus unavailable, using memory bus", "error", err)
			return infraeventbus.NewWithMemory(logger), func() {}, nil
		}
		return bus, func() { _ = bus.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported event bus driver %q", driver)
	}
}

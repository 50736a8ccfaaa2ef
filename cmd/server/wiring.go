package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	analyticsapp "github.com/stockmesh/backend/internal/application/analytics"
	inventoryapp "github.com/stockmesh/backend/internal/application/inventory"
	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/infrastructure/cache"
	"github.com/stockmesh/backend/internal/infrastructure/config"
	"github.com/stockmesh/backend/internal/infrastructure/ecommerce"
	"github.com/stockmesh/backend/internal/infrastructure/logger"
	"github.com/stockmesh/backend/internal/infrastructure/persistence"
	"github.com/stockmesh/backend/internal/infrastructure/scheduler"
	"github.com/stockmesh/backend/internal/infrastructure/storage"
	"github.com/stockmesh/backend/internal/infrastructure/strategy"
	"github.com/stockmesh/backend/internal/infrastructure/strategy/allocation"
	"github.com/stockmesh/backend/internal/infrastructure/telemetry"
	"github.com/stockmesh/backend/internal/interfaces/http/handler"
	"github.com/stockmesh/backend/internal/interfaces/http/router"
)

// application holds the long-lived components built at startup
type application struct {
	log      *zap.Logger
	db       *persistence.Database
	dbInstr  *telemetry.DBInstrumentation
	redis    *redis.Client
	registry *ecommerce.Registry
	meter    metric.Meter
	runner   *scheduler.Runner

	inventory  *inventoryapp.InventoryService
	marketData *analyticsapp.MarketDataService
	analyzers  *analyticsapp.AnalyticsService
	research   *analyticsapp.MarketResearchService
	snapshots  *analyticsapp.SnapshotService
}

func buildApp(ctx context.Context, cfg *config.Config, providers *telemetry.Providers, log *zap.Logger) (_ *application, err error) {
	app := &application{log: log, meter: providers.Meter.Meter(telemetry.TracerName)}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	if err := app.openDatabase(ctx, cfg); err != nil {
		return nil, err
	}
	if cfg.Redis.Enabled {
		app.redis, err = cache.NewRedisClient(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	app.registry, err = ecommerce.NewRegistryFromConfig(channelConfigs(cfg.Channels), log)
	if err != nil {
		return nil, fmt.Errorf("channel registry: %w", err)
	}

	syncMetrics, err := telemetry.NewSyncMetrics(telemetry.SyncMetricsConfig{Meter: app.meter, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("sync metrics: %w", err)
	}

	cacheOpts := []cache.MarketDataCacheOption{
		cache.WithTTL(cfg.Analytics.CacheTTL),
		cache.WithLogger(log.Named("market_cache")),
	}
	if app.redis != nil {
		cacheOpts = append(cacheOpts, cache.WithRedis(app.redis), cache.WithKeyPrefix(cfg.Redis.KeyPrefix))
	}
	marketCache, err := cache.NewMarketDataCache(analyticsapp.NewAdapterSource(app.registry), cfg.Analytics.CacheSize, cacheOpts...)
	if err != nil {
		return nil, fmt.Errorf("market data cache: %w", err)
	}

	allocator, err := newAllocator(cfg.Sync.AllocationStrategy, log)
	if err != nil {
		return nil, err
	}
	allocator.SetMetrics(syncMetrics)

	items := persistence.NewGormItemRepository(app.db.DB)
	listings := persistence.NewGormListingRepository(app.db.DB)
	history := persistence.NewGormHistoryRepository(app.db.DB)
	samples := persistence.NewGormCompetitorSampleRepository(app.db.DB)
	listingAnalytics := persistence.NewGormListingAnalyticsRepository(app.db.DB)

	orchestrator := inventoryapp.NewSyncOrchestrator(listings, history, app.registry, allocator, log.Named("sync"),
		inventoryapp.WithMaxConcurrency(cfg.Sync.MaxConcurrency),
		inventoryapp.WithSyncMetrics(syncMetrics),
	)
	app.inventory = inventoryapp.NewInventoryService(items, orchestrator, app.registry, log)
	app.marketData = analyticsapp.NewMarketDataService(app.registry, marketCache)
	app.analyzers = analyticsapp.NewAnalyticsService(history)

	app.research = analyticsapp.NewMarketResearchService(listings, app.registry, marketCache, samples, listingAnalytics,
		analyticsapp.MarketResearchConfig{
			HistoryDays:    cfg.Analytics.HistoryDays,
			MaxConcurrency: cfg.Sync.MaxConcurrency,
		}, log.Named("research"))
	app.research.SetMetrics(syncMetrics)

	archive, err := newSnapshotArchive(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app.snapshots = analyticsapp.NewSnapshotService(listingAnalytics, archive, log.Named("snapshot"))

	app.runner = scheduler.NewRunner(scheduler.RunnerConfig{
		JobTimeout: cfg.Analytics.JobTimeout,
		Location:   cfg.Analytics.Location(),
	}, log.Named("scheduler"))
	app.runner.SetMetrics(syncMetrics)
	for _, job := range analyticsJobs(cfg.Analytics, app.research, app.snapshots, log) {
		if err := app.runner.Register(job); err != nil {
			return nil, err
		}
	}

	return app, nil
}

func (a *application) openDatabase(ctx context.Context, cfg *config.Config) error {
	gormLog := logger.NewGormLogger(a.log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.Open(ctx, &cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	a.db = db

	a.dbInstr, err = telemetry.NewDBInstrumentation(telemetry.DBConfig{
		TracingEnabled:     cfg.Telemetry.DBTraceEnabled,
		MetricsEnabled:     cfg.Telemetry.MetricsEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, a.meter, a.log)
	if err != nil {
		return fmt.Errorf("database instrumentation: %w", err)
	}
	if err := db.DB.Use(a.dbInstr); err != nil {
		return fmt.Errorf("register database instrumentation: %w", err)
	}
	if sqlDB, err := db.SQL(); err == nil {
		a.dbInstr.StartPoolStats(ctx, sqlDB)
	}

	if err := db.AutoMigrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	a.log.Info("Database connected", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.DBName))
	return nil
}

// Close releases connections in reverse order of acquisition
func (a *application) Close() {
	if a.dbInstr != nil {
		a.dbInstr.Stop()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("Error closing Redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("Error closing database", zap.Error(err))
		}
	}
}

func (a *application) handlers() router.Handlers {
	return router.Handlers{
		Inventory:   handler.NewInventoryHandler(a.inventory),
		Marketplace: handler.NewMarketplaceHandler(a.inventory, a.marketData),
		Analytics:   handler.NewAnalyticsHandler(a.analyzers, a.research, a.snapshots),
		Scheduler:   handler.NewSchedulerHandler(a.runner),
		Health:      handler.NewHealthHandler(a.db, a.registry),
	}
}

func newAllocator(primary string, log *zap.Logger) (*inventoryapp.Allocator, error) {
	strategies, err := strategy.NewRegistryWithDefaults()
	if err != nil {
		return nil, fmt.Errorf("strategy registry: %w", err)
	}
	primaryStrategy, err := strategies.Get(primary)
	if err != nil {
		return nil, fmt.Errorf("allocation strategy %q (available: %s): %w", primary, strings.Join(strategies.Names(), ", "), err)
	}
	fallback, err := strategies.Get(allocation.Even)
	if err != nil {
		return nil, fmt.Errorf("fallback allocation strategy: %w", err)
	}
	return inventoryapp.NewAllocator(primaryStrategy, fallback, log.Named("allocator")), nil
}

func newSnapshotArchive(ctx context.Context, cfg *config.Config, log *zap.Logger) (analytics.SnapshotArchive, error) {
	if !cfg.Storage.Enabled {
		log.Info("Snapshot archive disabled, keeping snapshots in memory")
		return storage.NewMemoryArchive(), nil
	}

	archive, err := storage.NewS3SnapshotArchive(&cfg.Storage, storage.WithLogger(log.Named("archive")))
	if err != nil {
		return nil, fmt.Errorf("snapshot archive: %w", err)
	}
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("snapshot bucket: %w", err)
	}
	log.Info("Snapshot archive ready", zap.String("bucket", archive.Bucket()))
	return archive, nil
}

func channelConfigs(channels []config.ChannelConfig) []ecommerce.ChannelConfig {
	out := make([]ecommerce.ChannelConfig, 0, len(channels))
	for _, ch := range channels {
		out = append(out, ecommerce.ChannelConfig{
			Code:      integration.ChannelCode(ch.Code),
			Kind:      ch.Kind,
			BaseURL:   ch.BaseURL,
			APIKey:    ch.APIKey,
			APISecret: ch.APISecret,
			Timeout:   ch.Timeout,
			Enabled:   ch.Enabled,
		})
	}
	return out
}

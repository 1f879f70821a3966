// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"fmt"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alchemorsel/composer/internal/application/catalog"
	"github.com/alchemorsel/composer/internal/application/composition"
	"github.com/alchemorsel/composer/internal/application/cooking"
	"github.com/alchemorsel/composer/internal/infrastructure/config"
	"github.com/alchemorsel/composer/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/composer/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/composer/internal/infrastructure/monitoring"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/catalogfile"
	gormRepo "github.com/alchemorsel/composer/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/alchemorsel/composer/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/s3catalog"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/composer/internal/ports/inbound"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/alchemorsel/composer/pkg/healthcheck"
	"github.com/alchemorsel/composer/pkg/logger"
)

// ConfigPath is the configuration file to load; empty searches the default
// locations
type ConfigPath string

// New builds the application
func New(configPath string, extra ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(ConfigPath(configPath)),
		Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Options(extra...),
	)
}

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	CacheModule,

	// Catalog and services
	CatalogModule,
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging with a level that follows config reloads
var LoggerModule = fx.Provide(
	zap.NewAtomicLevel,
	func(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
		return logger.NewWithLevel(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		}, level)
	},
)

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	NewRegistry,
	monitoring.NewMetricsCollector,
	NewTelemetry,
	func(m *monitoring.MetricsCollector) outbound.CatalogMetrics { return m },
	func(t *monitoring.Telemetry, m *monitoring.MetricsCollector) (outbound.AnalysisMetrics, error) {
		return t.AnalysisMetrics(m)
	},
)

// DatabaseModule provides the catalog database
var DatabaseModule = fx.Provide(NewDatabase)

// CacheModule provides the shared catalog snapshot cache
var CacheModule = fx.Provide(NewSnapshotCache)

// CatalogModule provides catalog sources, the catalog cache and the
// cooking-effect resolver
var CatalogModule = fx.Provide(
	NewCatalogSources,
	func(
		source outbound.IngredientCatalogSource,
		snapshots outbound.CacheRepository,
		metrics outbound.CatalogMetrics,
		cfg *config.Config,
		log *zap.Logger,
	) *catalog.Cache {
		return catalog.NewCache(source, snapshots, metrics, catalog.CacheConfig{
			SnapshotKey: cfg.Catalog.SnapshotKey,
			SnapshotTTL: cfg.Catalog.SnapshotTTL,
		}, log)
	},
	func(effects outbound.CookingEffectSource, log *zap.Logger) *cooking.Resolver {
		return cooking.NewResolver(effects, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	NewCompositionStore,
	func(store *memory.CompositionStore) outbound.CompositionStore { return store },
	func(
		cache *catalog.Cache,
		resolver *cooking.Resolver,
		store outbound.CompositionStore,
		metrics outbound.AnalysisMetrics,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.CompositionService {
		return composition.NewService(cache, resolver, store, metrics, composition.Config{
			MaxGustatorySuggestions: cfg.Analysis.MaxGustatorySuggestions,
			CandidatesPerElement:    cfg.Analysis.CandidatesPerElement,
		}, log)
	},
	func(cache *catalog.Cache, source outbound.IngredientCatalogSource, resolver *cooking.Resolver, log *zap.Logger) inbound.CatalogService {
		return catalog.NewService(cache, source, resolver, log)
	},
)

// NewCompositionStore creates the session store and runs its idle sweeper
// for the lifetime of the app
func NewCompositionStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *memory.CompositionStore {
	store := memory.NewCompositionStore()
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			store.StartEviction(cfg.Sessions.IdleTTL, cfg.Sessions.SweepInterval)
			if cfg.Sessions.IdleTTL > 0 {
				log.Info("Evicting idle compositions",
					zap.Duration("idle_ttl", cfg.Sessions.IdleTTL),
					zap.Duration("sweep_interval", cfg.Sessions.SweepInterval),
				)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return store
}

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	NewHealthCheck,
	NewRateLimiter,
	NewAPIServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// NewRegistry creates the Prometheus registry with process and Go collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return registry
}

// NewTelemetry sets up OpenTelemetry and flushes it on stop
func NewTelemetry(lc fx.Lifecycle, cfg *config.Config, registry *prometheus.Registry, log *zap.Logger) (*monitoring.Telemetry, error) {
	tc := monitoring.TelemetryConfig{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		TracingEnabled: cfg.Monitoring.EnableTracing,
		OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
		OTLPInsecure:   cfg.Monitoring.OTLPInsecure,
		SamplingRate:   cfg.Monitoring.SamplingRate,
	}
	if cfg.Monitoring.EnableMetrics {
		tc.Registerer = registry
	}

	telemetry, err := monitoring.NewTelemetry(context.Background(), tc, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: telemetry.Shutdown})
	return telemetry, nil
}

// NewDatabase opens the catalog database when the catalog is served from
// it. For file and s3 catalogs it returns nil.
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Catalog.Source != config.CatalogSourceDatabase {
		return nil, nil
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "postgres":
		cm, err := postgres.NewConnectionManager(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := cm.Migrate(); err != nil {
				cm.Close()
				return nil, fmt.Errorf("failed to migrate PostgreSQL: %w", err)
			}
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return cm.Close() }})
		db = cm.GetDB()
	default:
		db, err = sqlite.SetupDatabase(sqlite.Options{
			Path:               cfg.Database.Path,
			LogLevel:           cfg.Database.LogLevel,
			SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
			AutoMigrate:        cfg.Database.AutoMigrate,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}})
	}

	if cfg.Database.Seed {
		doc, err := catalogfile.Seed()
		if err != nil {
			return nil, fmt.Errorf("failed to read seed catalog: %w", err)
		}
		if err := gormRepo.SeedCatalog(context.Background(), db, doc, log); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	log.Info("Catalog database ready",
		zap.String("driver", cfg.Database.Driver),
		zap.Bool("seeded", cfg.Database.Seed),
	)
	return db, nil
}

// SnapshotCache is the shared snapshot cache and, when Redis is enabled,
// its client
type SnapshotCache struct {
	fx.Out

	Repository outbound.CacheRepository
	Redis      redis.UniversalClient
}

// NewSnapshotCache returns the Redis cache when enabled, otherwise an
// in-process cache
func NewSnapshotCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (SnapshotCache, error) {
	if !cfg.Redis.Enabled {
		repo := memory.NewCacheRepository(0)
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			repo.Close()
			return nil
		}})
		log.Info("Using in-memory snapshot cache")
		return SnapshotCache{Repository: repo}, nil
	}

	client, err := redisRepo.NewClient(cfg, log)
	if err != nil {
		return SnapshotCache{}, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})

	return SnapshotCache{
		Repository: redisRepo.NewCacheRepository(client, "composer", log),
		Redis:      client,
	}, nil
}

// CatalogSources are the configured ingredient and cooking-effect sources
type CatalogSources struct {
	fx.Out

	Ingredients outbound.IngredientCatalogSource
	Effects     outbound.CookingEffectSource
}

// NewCatalogSources selects the catalog backend
func NewCatalogSources(cfg *config.Config, db *gorm.DB, log *zap.Logger) (CatalogSources, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		source := catalogfile.NewSource(catalogfile.FileLoader(cfg.Catalog.FilePath), log)
		return CatalogSources{Ingredients: source, Effects: source}, nil

	case config.CatalogSourceS3:
		s3cfg := s3catalog.Config{
			Bucket:   cfg.Catalog.S3Bucket,
			Key:      cfg.Catalog.S3Key,
			Region:   cfg.Catalog.S3Region,
			Endpoint: cfg.Catalog.S3Endpoint,
		}
		client, err := s3catalog.NewClient(s3cfg)
		if err != nil {
			return CatalogSources{}, err
		}
		source := catalogfile.NewSource(s3catalog.Loader(client, s3cfg, log), log)
		return CatalogSources{Ingredients: source, Effects: source}, nil

	default:
		if db == nil {
			return CatalogSources{}, fmt.Errorf("catalog source %q requires a database", cfg.Catalog.Source)
		}
		return CatalogSources{
			Ingredients: gormRepo.NewIngredientRepository(db),
			Effects:     gormRepo.NewCookingEffectRepository(db),
		}, nil
	}
}

// HealthParams are the dependencies checked by the health endpoints
type HealthParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
	DB     *gorm.DB
	Redis  redis.UniversalClient
	Cache  *catalog.Cache
}

// NewHealthCheck registers the database, Redis and catalog checks
func NewHealthCheck(p HealthParams) *healthcheck.HealthCheck {
	health := healthcheck.New(p.Config.App.Version, p.Logger.Named("health"))

	if p.DB != nil {
		health.Register("database", healthcheck.NewDatabaseChecker(p.DB))
	}
	if p.Redis != nil {
		health.Register("redis", healthcheck.NewRedisChecker(p.Redis), healthcheck.NonCritical())
	}
	health.Register("catalog", NewCatalogChecker(p.Cache))

	return health
}

// NewCatalogChecker reports the catalog healthy once it can be loaded
func NewCatalogChecker(cache *catalog.Cache) healthcheck.Checker {
	return healthcheck.NewCustomChecker("catalog", func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		snap, err := cache.Get(ctx)
		if err != nil {
			return healthcheck.StatusUnhealthy, err.Error(), nil
		}
		if snap.Len() == 0 {
			return healthcheck.StatusDegraded, "catalog is empty", nil
		}
		return healthcheck.StatusHealthy, "", map[string]interface{}{
			"size":      snap.Len(),
			"origin":    snap.Origin(),
			"loaded_at": snap.LoadedAt(),
		}
	})
}

// NewRateLimiter returns the per-client limiter, or nil when disabled
func NewRateLimiter(cfg *config.Config, log *zap.Logger) *middleware.RateLimiter {
	if !cfg.RateLimit.Enable {
		return nil
	}
	return middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerMin,
		cfg.RateLimit.BurstSize,
		5*cfg.RateLimit.CleanupInterval,
		log.Named("rate-limit"),
	)
}

// ServerParams are the dependencies of the API server
type ServerParams struct {
	fx.In

	Config       *config.Config
	Logger       *zap.Logger
	Compositions inbound.CompositionService
	Catalog      inbound.CatalogService
	Health       *healthcheck.HealthCheck
	Metrics      *monitoring.MetricsCollector
	Telemetry    *monitoring.Telemetry
	RateLimiter  *middleware.RateLimiter
}

// NewAPIServer creates the HTTP server
func NewAPIServer(p ServerParams) (*apiserver.Server, error) {
	return apiserver.NewServer(p.Config, apiserver.Dependencies{
		Compositions: p.Compositions,
		Catalog:      p.Catalog,
		Health:       p.Health,
		Metrics:      p.Metrics,
		Telemetry:    p.Telemetry,
		RateLimiter:  p.RateLimiter,
	}, p.Logger)
}

// LifecycleParams are the dependencies of the lifecycle hooks
type LifecycleParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Config      *config.Config
	ConfigPath  ConfigPath
	Logger      *zap.Logger
	Level       zap.AtomicLevel
	Server      *apiserver.Server
	Cache       *catalog.Cache
	RateLimiter *middleware.RateLimiter
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(p LifecycleParams) {
	log := p.Logger
	cfg := p.Config
	var cancel context.CancelFunc

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Composer",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("catalog_source", cfg.Catalog.Source),
			)

			if cfg.Catalog.WarmOnStart {
				if snap, err := p.Cache.Get(ctx); err != nil {
					log.Warn("Catalog warm-up failed, loading lazily", zap.Error(err))
				} else {
					log.Info("Catalog warmed", zap.Int("size", snap.Len()), zap.String("origin", snap.Origin()))
				}
			}

			watcher, err := config.NewWatcher(string(p.ConfigPath), log)
			if err != nil {
				return fmt.Errorf("failed to watch configuration: %w", err)
			}
			watcher.OnChange(func(next *config.Config) {
				p.Level.SetLevel(logger.ParseLevel(next.App.LogLevel))
			})
			watcher.Start()

			var bgCtx context.Context
			bgCtx, cancel = context.WithCancel(context.Background())
			if p.RateLimiter != nil {
				go p.RateLimiter.Run(bgCtx, cfg.RateLimit.CleanupInterval)
			}

			ln, err := net.Listen("tcp", p.Server.Server().Addr)
			if err != nil {
				cancel()
				return fmt.Errorf("failed to listen on %s: %w", p.Server.Server().Addr, err)
			}
			go func() {
				if err := p.Server.Serve(ln); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			log.Info("API server listening", zap.String("address", ln.Addr().String()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Composer")

			if cancel != nil {
				cancel()
			}
			if err := p.Server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}

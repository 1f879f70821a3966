// Package catalog owns the in-process ingredient catalog cache and the
// resolution of typed ingredient names against it.
package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/alchemorsel/composer/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Snapshot origins
const (
	OriginSource        = "source"
	OriginSnapshotCache = "snapshot-cache"
)

// CacheConfig configures the catalog cache
type CacheConfig struct {
	// SnapshotKey is the shared cache key holding a serialized catalog
	SnapshotKey string
	// SnapshotTTL is passed to the shared cache; zero stores without expiry
	SnapshotTTL time.Duration
}

// Cache holds the catalog for the process. It loads lazily on the first Get
// and is replaced only by Refresh; there is no time-based expiry. When several
// loads overlap, the one started by the most recent Refresh wins.
type Cache struct {
	source    outbound.IngredientCatalogSource
	snapshots outbound.CacheRepository
	metrics   outbound.CatalogMetrics
	config    CacheConfig
	logger    *zap.Logger

	mu        sync.RWMutex
	current   *Snapshot
	installed uint64
	requested uint64
	group     singleflight.Group

	// publishMu orders install and the shared snapshot write together, so the
	// shared copy always matches the newest installed generation.
	publishMu sync.Mutex
}

// NewCache creates a catalog cache. snapshots and metrics may be nil.
func NewCache(
	source outbound.IngredientCatalogSource,
	snapshots outbound.CacheRepository,
	metrics outbound.CatalogMetrics,
	config CacheConfig,
	logger *zap.Logger,
) *Cache {
	if config.SnapshotKey == "" {
		config.SnapshotKey = "catalog:snapshot:v1"
	}
	return &Cache{
		source:    source,
		snapshots: snapshots,
		metrics:   metrics,
		config:    config,
		logger:    logger.Named("catalog-cache"),
	}
}

// Get returns the cached catalog, loading it on first use. Concurrent first
// calls share a single load, which is not cancelled with the caller that
// happened to start it.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if snap := c.Current(); snap != nil {
		return snap, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("load", func() (interface{}, error) {
		if snap := c.Current(); snap != nil {
			return snap, nil
		}
		return c.loadLazily(loadCtx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Refresh reloads the catalog from the source and replaces the cached copy.
// On failure the previous snapshot stays in place.
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	c.requested++
	generation := c.requested
	c.mu.Unlock()

	snap, err := c.loadFromSource(ctx)
	if err != nil {
		return nil, err
	}

	installed, won := c.publish(ctx, generation, snap, true)
	c.logger.Info("Catalog refreshed",
		zap.Int("ingredients", installed.Len()),
		zap.Uint64("generation", generation),
		zap.Bool("superseded", !won),
	)
	return installed, nil
}

// Current returns the cached snapshot without loading, or nil
func (c *Cache) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// install stores snap and returns whichever snapshot is current afterwards,
// reporting whether snap won. Lazy loads (generation 0) only fill an empty
// cache; a refresh replaces the cache unless a later refresh has already been
// installed.
func (c *Cache) install(generation uint64, snap *Snapshot) (*Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || generation > c.installed {
		c.current = snap
		c.installed = generation
		return snap, true
	}
	return c.current, false
}

// publish installs snap and, when it won and share is set, writes it to the
// shared snapshot cache before any later generation can.
func (c *Cache) publish(ctx context.Context, generation uint64, snap *Snapshot, share bool) (*Snapshot, bool) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	installed, won := c.install(generation, snap)
	if won && share {
		c.storeSnapshot(ctx, snap)
	}
	return installed, won
}

func (c *Cache) loadLazily(ctx context.Context) (*Snapshot, error) {
	if snap, ok := c.loadSnapshot(ctx); ok {
		installed, _ := c.publish(ctx, 0, snap, false)
		return installed, nil
	}

	snap, err := c.loadFromSource(ctx)
	if err != nil {
		return nil, err
	}
	installed, _ := c.publish(ctx, 0, snap, true)
	return installed, nil
}

func (c *Cache) loadFromSource(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	ingredients, err := c.source.FindAll(ctx)
	c.observe(OriginSource, time.Since(start), len(ingredients), err)
	if err != nil {
		c.logger.Error("Failed to load ingredient catalog", zap.Error(err))
		return nil, errors.NewCatalogUnavailableError(err)
	}

	return NewSnapshot(ingredients, OriginSource, time.Now()), nil
}

func (c *Cache) loadSnapshot(ctx context.Context) (*Snapshot, bool) {
	if c.snapshots == nil {
		return nil, false
	}

	start := time.Now()
	data, err := c.snapshots.Get(ctx, c.config.SnapshotKey)
	if err != nil {
		if !stderrors.Is(err, outbound.ErrCacheMiss) {
			c.logger.Warn("Failed to read catalog snapshot", zap.Error(err))
		}
		return nil, false
	}

	var stored storedSnapshot
	if err := json.Unmarshal(data, &stored); err != nil {
		c.logger.Warn("Discarding unreadable catalog snapshot", zap.Error(err))
		return nil, false
	}
	c.observe(OriginSnapshotCache, time.Since(start), len(stored.Ingredients), nil)

	return NewSnapshot(stored.Ingredients, OriginSnapshotCache, stored.LoadedAt), true
}

func (c *Cache) storeSnapshot(ctx context.Context, snap *Snapshot) {
	if c.snapshots == nil {
		return
	}

	data, err := json.Marshal(storedSnapshot{Ingredients: snap.Ingredients(), LoadedAt: snap.LoadedAt()})
	if err != nil {
		c.logger.Warn("Failed to encode catalog snapshot", zap.Error(err))
		return
	}
	if err := c.snapshots.Set(ctx, c.config.SnapshotKey, data, c.config.SnapshotTTL); err != nil {
		c.logger.Warn("Failed to store catalog snapshot", zap.Error(err))
	}
}

func (c *Cache) observe(origin string, d time.Duration, size int, err error) {
	if c.metrics != nil {
		c.metrics.ObserveCatalogLoad(origin, d, size, err)
	}
}

type storedSnapshot struct {
	Ingredients []ingredient.Ingredient `json:"ingredients"`
	LoadedAt    time.Time               `json:"loaded_at"`
}

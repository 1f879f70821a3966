package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned while Redis is considered unavailable
var ErrCircuitOpen = errors.New("redis circuit breaker is open")

// CacheRepository implements the cache repository interface on Redis
type CacheRepository struct {
	client  redis.UniversalClient
	breaker *CircuitBreaker
	prefix  string
	logger  *zap.Logger
}

// NewCacheRepository creates a Redis cache repository. Keys are namespaced
// with prefix.
func NewCacheRepository(client redis.UniversalClient, prefix string, logger *zap.Logger) *CacheRepository {
	return &CacheRepository{
		client:  client,
		breaker: NewCircuitBreaker(5, 30*time.Second),
		prefix:  prefix,
		logger:  logger.Named("redis-cache"),
	}
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.do(func() error {
		var err error
		data, err = r.client.Get(ctx, r.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return outbound.ErrCacheMiss
		}
		return err
	})
	if err != nil {
		if !errors.Is(err, outbound.ErrCacheMiss) {
			r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, err
	}
	return data, nil
}

// Set stores a value in cache with TTL; zero stores without expiry
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.do(func() error {
		return r.client.Set(ctx, r.key(key), value, ttl).Err()
	})
	if err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete removes a value from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	err := r.do(func() error {
		return r.client.Del(ctx, r.key(key)).Err()
	})
	if err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Exists checks if a key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	var n int64
	err := r.do(func() error {
		var err error
		n, err = r.client.Exists(ctx, r.key(key)).Result()
		return err
	})
	if err != nil {
		r.logger.Error("Cache exists check failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return n > 0, nil
}

// Ping checks connectivity, bypassing the circuit breaker
func (r *CacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// do runs op through the circuit breaker. Cache misses count as successes.
func (r *CacheRepository) do(op func() error) error {
	if !r.breaker.AllowRequest() {
		return ErrCircuitOpen
	}

	err := op()
	if err != nil && !errors.Is(err, outbound.ErrCacheMiss) {
		r.breaker.RecordFailure()
		if r.breaker.State() == CircuitOpen {
			r.logger.Warn("Redis circuit opened", zap.Error(err))
		}
		return fmt.Errorf("redis: %w", err)
	}

	r.breaker.RecordSuccess()
	return err
}

func (r *CacheRepository) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

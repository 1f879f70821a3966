// Package redis provides the Redis-backed shared cache used for catalog
// snapshots
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/alchemorsel/composer/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient creates a Redis client, in cluster mode when cluster nodes are
// configured, and verifies the connection
func NewClient(cfg *config.Config, logger *zap.Logger) (redis.UniversalClient, error) {
	rc := cfg.Redis
	opts := &redis.UniversalOptions{
		Addrs:        cfg.RedisAddrs(),
		Password:     rc.Password,
		DB:           rc.Database,
		MaxRetries:   rc.MaxRetries,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,

		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,

		ConnMaxIdleTime: 5 * time.Minute,
		PoolTimeout:     10 * time.Second,
	}
	if rc.EnableCluster && len(rc.ClusterNodes) > 0 {
		// DB selection is not supported by Redis Cluster
		opts.DB = 0
		logger.Info("Redis cluster mode enabled", zap.Strings("nodes", rc.ClusterNodes))
	}

	client := redis.NewUniversalClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis client initialized successfully",
		zap.Strings("addrs", opts.Addrs),
		zap.Int("db", opts.DB),
	)
	return client, nil
}

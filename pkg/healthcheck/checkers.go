package healthcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// DefaultPoolSaturation is the share of busy connections above which a pool
// reports degraded
const DefaultPoolSaturation = 0.9

// DatabaseChecker pings the catalog database and inspects its pool
type DatabaseChecker struct {
	db         *gorm.DB
	saturation float64
}

// NewDatabaseChecker creates a new database checker
func NewDatabaseChecker(db *gorm.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db, saturation: DefaultPoolSaturation}
}

// Check pings the database. A saturated pool is degraded.
func (d *DatabaseChecker) Check(ctx context.Context) Check {
	return timed(func() (Status, string, interface{}) {
		sqlDB, err := d.db.DB()
		if err != nil {
			return StatusUnhealthy, err.Error(), nil
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return StatusUnhealthy, err.Error(), nil
		}

		stats := sqlDB.Stats()
		meta := map[string]interface{}{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"max_open":         stats.MaxOpenConnections,
			"wait_count":       stats.WaitCount,
		}
		if stats.MaxOpenConnections > 0 {
			used := float64(stats.InUse) / float64(stats.MaxOpenConnections)
			if used > d.saturation {
				return StatusDegraded, fmt.Sprintf("connection pool %.0f%% in use", used*100), meta
			}
		}
		return StatusHealthy, "", meta
	})
}

// RedisChecker pings the snapshot cache
type RedisChecker struct {
	client redis.UniversalClient
}

// NewRedisChecker creates a new Redis checker
func NewRedisChecker(client redis.UniversalClient) *RedisChecker {
	return &RedisChecker{client: client}
}

// Check pings Redis and reports pool statistics
func (r *RedisChecker) Check(ctx context.Context) Check {
	return timed(func() (Status, string, interface{}) {
		if err := r.client.Ping(ctx).Err(); err != nil {
			return StatusUnhealthy, err.Error(), nil
		}

		stats := r.client.PoolStats()
		return StatusHealthy, "", map[string]interface{}{
			"total_conns": stats.TotalConns,
			"idle_conns":  stats.IdleConns,
			"timeouts":    stats.Timeouts,
		}
	})
}

func timed(fn func() (Status, string, interface{})) Check {
	start := time.Now()
	status, message, meta := fn()
	return Check{
		Status:      status,
		Message:     message,
		Metadata:    meta,
		LastChecked: start,
		Duration:    time.Since(start),
	}
}

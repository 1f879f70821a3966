// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alchemorsel/composer/internal/infrastructure/config"
	gormModels "github.com/alchemorsel/composer/internal/infrastructure/persistence/gorm"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// ConnectionManager manages the primary connection and optional read replicas
type ConnectionManager struct {
	config  *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	writeDB *sql.DB
}

// ConnectionConfig holds connection pool configuration
type ConnectionConfig struct {
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	SlowQueryThreshold time.Duration
	LogLevel           string
	ReadReplicas       []string
	LoadBalancePolicy  string
}

// DefaultConnectionConfig returns the default pool configuration. The
// catalog is read-mostly, so the pool stays small.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		MaxOpenConns:       25,
		MaxIdleConns:       5,
		ConnMaxLifetime:    30 * time.Minute,
		ConnMaxIdleTime:    5 * time.Minute,
		SlowQueryThreshold: 100 * time.Millisecond,
		LogLevel:           "warn",
		LoadBalancePolicy:  "round_robin",
	}
}

// NewConnectionManager connects to the primary and registers read replicas
func NewConnectionManager(cfg *config.Config, log *zap.Logger) (*ConnectionManager, error) {
	connConfig := DefaultConnectionConfig()

	// Override defaults with config values
	if cfg.Database.MaxOpenConns > 0 {
		connConfig.MaxOpenConns = cfg.Database.MaxOpenConns
	}
	if cfg.Database.MaxIdleConns > 0 {
		connConfig.MaxIdleConns = cfg.Database.MaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		connConfig.ConnMaxLifetime = cfg.Database.ConnMaxLifetime
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		connConfig.ConnMaxIdleTime = cfg.Database.ConnMaxIdleTime
	}
	if cfg.Database.SlowQueryThreshold > 0 {
		connConfig.SlowQueryThreshold = cfg.Database.SlowQueryThreshold
	}
	if cfg.Database.LogLevel != "" {
		connConfig.LogLevel = cfg.Database.LogLevel
	}
	connConfig.ReadReplicas = cfg.Database.ReadReplicas

	cm := &ConnectionManager{
		config: cfg,
		logger: log.Named("postgres"),
	}

	if err := cm.initializePrimaryConnection(connConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize primary connection: %w", err)
	}

	if err := cm.initializeReadReplicas(connConfig); err != nil {
		cm.logger.Warn("Failed to initialize read replicas", zap.Error(err))
	}

	cm.logger.Info("Database connection manager initialized",
		zap.Int("max_open_conns", connConfig.MaxOpenConns),
		zap.Int("max_idle_conns", connConfig.MaxIdleConns),
		zap.Duration("conn_max_lifetime", connConfig.ConnMaxLifetime),
		zap.Int("read_replicas", len(connConfig.ReadReplicas)),
	)

	return cm, nil
}

// initializePrimaryConnection sets up the primary database connection
func (cm *ConnectionManager) initializePrimaryConnection(config *ConnectionConfig) error {
	db, err := gorm.Open(postgres.Open(cm.config.GetDSN()), &gorm.Config{
		Logger:                 gormModels.NewLogger(cm.logger, config.LogLevel, config.SlowQueryThreshold),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	cm.db = db
	cm.writeDB = sqlDB
	return nil
}

// initializeReadReplicas routes catalog reads to replicas through dbresolver
func (cm *ConnectionManager) initializeReadReplicas(config *ConnectionConfig) error {
	if len(config.ReadReplicas) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, len(config.ReadReplicas))
	for i, replica := range config.ReadReplicas {
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			replica,
			cm.config.Database.Port,
			cm.config.Database.Username,
			cm.config.Database.Password,
			cm.config.Database.Database,
			cm.config.Database.SSLMode,
		)
		replicas[i] = postgres.Open(dsn)
	}

	err := cm.db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   getLoadBalancePolicy(config.LoadBalancePolicy),
	}).
		SetMaxOpenConns(config.MaxOpenConns).
		SetMaxIdleConns(config.MaxIdleConns).
		SetConnMaxLifetime(config.ConnMaxLifetime))
	if err != nil {
		return fmt.Errorf("failed to register read replicas: %w", err)
	}

	cm.logger.Info("Read replicas configured",
		zap.Int("replica_count", len(config.ReadReplicas)),
		zap.String("load_balance_policy", config.LoadBalancePolicy),
	)
	return nil
}

// GetDB returns the main database connection
func (cm *ConnectionManager) GetDB() *gorm.DB {
	return cm.db
}

// Stats returns the primary pool statistics
func (cm *ConnectionManager) Stats() sql.DBStats {
	return cm.writeDB.Stats()
}

// HealthCheck pings the primary
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	if err := cm.writeDB.PingContext(ctx); err != nil {
		return fmt.Errorf("primary database ping failed: %w", err)
	}
	return nil
}

// Migrate creates or updates the catalog tables
func (cm *ConnectionManager) Migrate() error {
	return cm.db.AutoMigrate(gormModels.AllModels()...)
}

// Close closes the primary connection
func (cm *ConnectionManager) Close() error {
	if cm.writeDB != nil {
		if err := cm.writeDB.Close(); err != nil {
			cm.logger.Error("Failed to close primary database", zap.Error(err))
			return err
		}
	}
	return nil
}

// getLoadBalancePolicy converts string to dbresolver policy
func getLoadBalancePolicy(policy string) dbresolver.Policy {
	switch policy {
	case "random":
		return dbresolver.RandomPolicy{}
	case "round_robin":
		return dbresolver.StrictRoundRobinPolicy()
	default:
		return dbresolver.RandomPolicy{}
	}
}

// Package sqlite opens the SQLite catalog database
package sqlite

import (
	"fmt"
	"time"

	gormModels "github.com/alchemorsel/composer/internal/infrastructure/persistence/gorm"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Options configures the SQLite database
type Options struct {
	Path               string
	LogLevel           string
	SlowQueryThreshold time.Duration
	AutoMigrate        bool
}

// SetupDatabase opens the SQLite database and migrates the catalog schema
func SetupDatabase(opts Options, logger *zap.Logger) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	dsn := opts.Path
	if dsn == "" || dsn == ":memory:" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormModels.NewLogger(logger, opts.LogLevel, opts.SlowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if opts.AutoMigrate {
		if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return db, nil
}

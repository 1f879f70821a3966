// Package migrations applies the catalog schema to PostgreSQL with
// golang-migrate. The SQL files are embedded in the binary.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

const migrationsTable = "catalog_schema_migrations"

// Status is the schema version recorded in the database
type Status struct {
	Version uint
	Dirty   bool
}

// Migrator applies the embedded catalog migrations
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// Open connects to url with the pgx driver and prepares a migrator. Close
// releases the connection.
func Open(url string, logger *zap.Logger) (*Migrator, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	m, err := New(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// New prepares a migrator on an open connection. The migrator takes
// ownership of db.
func New(db *sql.DB, logger *zap.Logger) (*Migrator, error) {
	source, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{m: m, logger: logger.Named("migrations")}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	return m.run("up", m.m.Up)
}

// Down rolls back the given number of migrations
func (m *Migrator) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return m.run("down", func() error { return m.m.Steps(-steps) })
}

// Status reports the current schema version. A fresh database is version 0.
func (m *Migrator) Status() (Status, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to read schema version: %w", err)
	}
	return Status{Version: version, Dirty: dirty}, nil
}

// Force records version without running any migration, clearing the dirty
// flag left by a failed run
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and the database connection
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.m.Close()
	return errors.Join(sourceErr, dbErr)
}

func (m *Migrator) run(direction string, apply func() error) error {
	start := time.Now()

	before, err := m.Status()
	if err != nil {
		return err
	}
	if before.Dirty {
		return fmt.Errorf("schema version %d is dirty, force a version first", before.Version)
	}

	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Schema up to date", zap.Uint("version", before.Version))
			return nil
		}
		return fmt.Errorf("migrate %s failed: %w", direction, err)
	}

	after, err := m.Status()
	if err != nil {
		return err
	}
	m.logger.Info("Schema migrated",
		zap.String("direction", direction),
		zap.Uint("from_version", before.Version),
		zap.Uint("to_version", after.Version),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

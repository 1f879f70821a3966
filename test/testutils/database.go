//go:build integration

// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/alchemorsel/composer/internal/infrastructure/config"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/migrations"
)

// TestDatabase provides a migrated PostgreSQL instance with cleanup
type TestDatabase struct {
	Container testcontainers.Container
	DB        *sql.DB
	PgxPool   *pgxpool.Pool
	DSN       string
	Host      string
	Port      int
	config    DatabaseConfig
	t         *testing.T
}

// DatabaseConfig holds test database configuration
type DatabaseConfig struct {
	Image    string
	Database string
	Username string
	Password string
	Port     string
}

// DefaultDatabaseConfig returns the default test database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Image:    "postgres:15-alpine",
		Database: "composer_test",
		Username: "test_user",
		Password: "test_password",
		Port:     "5432",
	}
}

// SetupTestDatabase starts a postgres container and applies the migrations
func SetupTestDatabase(t *testing.T) *TestDatabase {
	return SetupTestDatabaseWithConfig(t, DefaultDatabaseConfig())
}

// SetupTestDatabaseWithConfig creates a test database with custom configuration
func SetupTestDatabaseWithConfig(t *testing.T, cfg DatabaseConfig) *TestDatabase {
	ctx := context.Background()
	port := nat.Port(cfg.Port + "/tcp")

	dsnFor := func(host string, p nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Username, cfg.Password, host, p.Port(), cfg.Database)
	}

	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        cfg.Image,
				ExposedPorts: []string{string(port)},
				Env: map[string]string{
					"POSTGRES_DB":       cfg.Database,
					"POSTGRES_USER":     cfg.Username,
					"POSTGRES_PASSWORD": cfg.Password,
				},
				WaitingFor: wait.ForAll(
					wait.ForLog("database system is ready to accept connections").
						WithOccurrence(2).
						WithStartupTimeout(60*time.Second),
					wait.ForSQL(port, "pgx", dsnFor),
				),
				Tmpfs: map[string]string{
					"/var/lib/postgresql/data": "rw",
				},
			},
			Started: true,
		})
	require.NoError(t, err, "Failed to start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err)

	dsn := dsnFor(host, mapped)

	m, err := migrations.Open(dsn, zap.NewNop())
	require.NoError(t, err, "Failed to open migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
	require.NoError(t, m.Close())

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.PingContext(ctx), "Failed to ping test database")

	pgxConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err, "Failed to parse pgx config")
	pgxConfig.MaxConns = 4
	pgxConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	require.NoError(t, err, "Failed to create pgx pool")

	testDB := &TestDatabase{
		Container: container,
		DB:        db,
		PgxPool:   pool,
		DSN:       dsn,
		Host:      host,
		Port:      mapped.Int(),
		config:    cfg,
		t:         t,
	}

	t.Cleanup(testDB.Cleanup)

	return testDB
}

// Config returns an application config pointing at the test database
func (td *TestDatabase) Config() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "composer-test", Environment: "test"},
		Database: config.DatabaseConfig{
			Driver:          "postgres",
			Host:            td.Host,
			Port:            td.Port,
			Database:        td.config.Database,
			Username:        td.config.Username,
			Password:        td.config.Password,
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "silent",
		},
	}
}

// TruncateCatalog removes all catalog rows while preserving structure
func (td *TestDatabase) TruncateCatalog() error {
	_, err := td.PgxPool.Exec(context.Background(), "TRUNCATE TABLE cooking_effects, ingredients CASCADE")
	return err
}

// CountRecords counts records in a table
func (td *TestDatabase) CountRecords(table string) (int, error) {
	var count int
	err := td.PgxPool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count)
	return count, err
}

// Cleanup closes all connections and stops the container
func (td *TestDatabase) Cleanup() {
	if td.PgxPool != nil {
		td.PgxPool.Close()
	}
	if td.DB != nil {
		td.DB.Close()
	}
	if td.Container != nil {
		if err := td.Container.Terminate(context.Background()); err != nil {
			td.t.Logf("Failed to terminate postgres container: %v", err)
		}
	}
}


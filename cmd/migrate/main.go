// Package main runs the PostgreSQL catalog migrations
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/alchemorsel/composer/internal/infrastructure/config"
	"github.com/alchemorsel/composer/internal/infrastructure/persistence/migrations"
	"github.com/alchemorsel/composer/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	force := flag.Int("force", -1, "force the schema to this version before running the command")
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, flag.Arg(0), *force, *steps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, command string, force, steps int) error {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrations require the postgres driver, configured driver is %q", cfg.Database.Driver)
	}

	log, err := logger.New(logger.Config{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	m, err := migrations.Open(cfg.GetMigrationURL(), log)
	if err != nil {
		return err
	}
	defer m.Close()

	if force >= 0 {
		if err := m.Force(force); err != nil {
			return err
		}
	}

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down(steps)
	case "version":
		status, err := m.Status()
		if err != nil {
			return err
		}
		log.Info("Schema version", zap.Uint("version", status.Version), zap.Bool("dirty", status.Dirty))
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

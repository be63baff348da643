// Command migrate applies the SQL schema migrations for the configured
// database driver.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/medstock/backend/internal/infrastructure/config"
	"github.com/medstock/backend/internal/infrastructure/logger"
	"github.com/medstock/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const usage = `MedStock Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  create <name> [desc]  Create a new migration pair for every driver
  list                  List available migrations

Flags:
  -path string          Migrations root (default: ./migrations)
  -log-level string     Log level (default: info)

The driver and connection come from config.toml or MEDSTOCK_DATABASE_* variables.`

var errUsage = errors.New("invalid usage")

func main() {
	migrationsPath := flag.String("path", "migrations", "Migrations root holding one directory per driver")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err = run(flag.Args(), *migrationsPath, log)
	_ = log.Sync()
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "%v\n\n%s\n", err, usage)
		os.Exit(2)
	case err != nil:
		log.Error("Migration command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(args []string, migrationsPath string, log *zap.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: command required", errUsage)
	}
	command, rest := args[0], args[1:]

	root, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	switch command {
	case "create":
		return create(root, rest, log)
	case "list":
		return list(root)
	case "up", "down", "step", "version", "force":
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("driver", cfg.Database.Driver),
		zap.String("migrations_path", root),
	)

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.MigrationDSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.New(db, cfg.Database.Driver, root, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(rest, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "force":
		v, err := intArg(rest, "version")
		if err != nil {
			return err
		}
		return m.Force(v)
	default:
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	}
}

func intArg(args []string, name string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s required", errUsage, name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", errUsage, name, args[0])
	}
	return n, nil
}

func create(root string, args []string, log *zap.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: migration name required", errUsage)
	}
	var description string
	if len(args) > 1 {
		description = args[1]
	}
	files, err := migration.CreateMigration(root, args[0], description)
	if err != nil {
		return err
	}
	for _, mf := range files {
		log.Info("Migration created",
			zap.String("dialect", mf.Dialect),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
	}
	return nil
}

func list(root string) error {
	for _, dialect := range migration.Dialects {
		names, err := migration.ListMigrations(filepath.Join(root, dialect))
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d)\n", dialect, len(names))
		for _, name := range names {
			fmt.Println("  -", name)
		}
	}
	return nil
}

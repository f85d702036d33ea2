// Command migrate applies or rolls back the catalog schema.
//
//	migrate [-path migrations] up|down|version|force N
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"yantratune/internal/config"
	"yantratune/internal/logging"
)

func main() {
	dir := flag.String("path", "migrations", "directory holding the migration files")
	flag.Parse()

	logger := logging.New(logging.Config{Level: "info", Format: "text"})
	logging.SetGlobalLogger(logger)

	if err := run(*dir, flag.Args()); err != nil {
		logger.Fatal(err, "migration failed")
	}
}

func run(dir string, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: migrate [-path dir] up|down|version|force N")
	}

	_ = godotenv.Load(config.LocalEnvFile)
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(absPath), "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logging.Info("migrations applied")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("roll back migrations: %w", err)
		}
		logging.Info("migrations rolled back")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Fprintf(os.Stdout, "version %d (dirty: %t)\n", version, dirty)
	case "force":
		if len(args) != 2 {
			return errors.New("usage: migrate force N")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		logging.Info(fmt.Sprintf("forced schema version %d", version))
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

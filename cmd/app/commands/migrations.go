package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// DefaultMigrationsDir is the migrations root relative to the working directory.
const DefaultMigrationsDir = "migrations"

// RunMigrations applies all pending migrations from <migrationsDir>/<driver dir>
// to db. ErrNoChange is not an error. The migrate driver takes ownership of db
// and closes it when done.
func RunMigrations(logger *slog.Logger, db *sql.DB, driver, migrationsDir string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	dbDriver, sourceDir, err := migrationDriver(db, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s/%s", migrationsDir, sourceDir),
		driver,
		dbDriver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("migrations completed successfully",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

// migrationDriver returns the migrate database driver and the migrations
// subdirectory for a DB_DRIVER value.
func migrationDriver(db *sql.DB, driver string) (database.Driver, string, error) {
	if db == nil {
		return nil, "", errors.New("database not configured")
	}

	switch driver {
	case "sqlite3":
		d, err := sqlite3.WithInstance(db, &sqlite3.Config{})
		return d, "sqlite3", err
	case "postgres":
		d, err := postgres.WithInstance(db, &postgres.Config{})
		return d, "postgresql", err
	case "mysql":
		d, err := mysql.WithInstance(db, &mysql.Config{})
		return d, "mysql", err
	default:
		return nil, "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

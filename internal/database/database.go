// Package database opens the settings store and carries transactions through context.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Drivers lists the database/sql driver names the settings store runs on.
var Drivers = []string{"sqlite3", "postgres", "mysql"}

// ErrNotConfigured is returned by Ping when no connection was opened.
var ErrNotConfigured = errors.New("database not configured")

// Config describes one connection pool.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect opens and pings a pool. An in-memory sqlite database exists only
// per connection, so such pools are pinned to a single connection.
func Connect(cfg Config) (*sql.DB, error) {
	if !slices.Contains(Drivers, cfg.Driver) {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	maxOpen, maxIdle := cfg.MaxOpenConnections, cfg.MaxIdleConnections
	if isSQLiteMemory(cfg) {
		maxOpen, maxIdle = 1, 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

func isSQLiteMemory(cfg Config) bool {
	return cfg.Driver == "sqlite3" && strings.Contains(cfg.ConnectionString, ":memory:")
}

// Ping reports whether db answers before ctx expires.
func Ping(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return ErrNotConfigured
	}
	return db.PingContext(ctx)
}

// Package db opens the board's database connection pool and applies its schema.
// PostgreSQL (pgx) is the production store; SQLite is supported through either
// the cgo driver (mattn/go-sqlite3) or the pure-Go driver (modernc.org/sqlite).
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"project-board/internal/resilience/retry"
)

// Supported database/sql driver names.
const (
	DriverPostgres   = "pgx"
	DriverSQLite     = "sqlite3"
	DriverSQLitePure = "sqlite"
)

// Dialect selects the SQL flavour for schema and repositories.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DialectFor maps a driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres:
		return DialectPostgres, nil
	case DriverSQLite, DriverSQLitePure:
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// NewConnectionConfig builds a pool configuration. Values that are not
// positive fall back to DefaultConnectionConfig.
func NewConnectionConfig(maxOpen, maxIdle int, lifetime, idleTime time.Duration) ConnectionConfig {
	cfg := DefaultConnectionConfig()
	if maxOpen > 0 {
		cfg.MaxOpenConns = maxOpen
	}
	if maxIdle > 0 {
		cfg.MaxIdleConns = maxIdle
	}
	if lifetime > 0 {
		cfg.ConnMaxLifetime = lifetime
	}
	if idleTime > 0 {
		cfg.ConnMaxIdleTime = idleTime
	}
	return cfg
}

// Options describe how to reach the store.
type Options struct {
	Driver      string
	DSN         string
	Pool        ConnectionConfig
	PingTimeout time.Duration
	Retry       retry.Config
}

// Open creates and configures a connection pool and waits until the store
// answers a ping, retrying transient connection errors.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("open database: empty DSN")
	}

	dsn := opts.DSN
	pool := opts.Pool
	if dialect == DialectSQLite {
		dsn = sqliteDSN(opts.Driver, dsn)
		// One connection serializes writers and keeps in-memory databases shared.
		// It is never recycled, since closing it would drop an in-memory store.
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
		pool.ConnMaxLifetime = 0
		pool.ConnMaxIdleTime = 0
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", opts.Driver),
		slog.Int("max_open_conns", pool.MaxOpenConns),
		slog.Int("max_idle_conns", pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", pool.ConnMaxIdleTime))

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	retryCfg := opts.Retry
	if retryCfg.MaxAttempts <= 0 {
		retryCfg = retry.StartupConfig()
	}

	err = retry.WithBackoff(ctx, retryCfg, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established successfully", slog.String("dialect", string(dialect)))
	return db, nil
}

// sqliteDSN turns on foreign keys so article deletes cascade to comments.
func sqliteDSN(driver, dsn string) string {
	var param string
	switch driver {
	case DriverSQLite:
		if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
			return dsn
		}
		param = "_foreign_keys=on"
	case DriverSQLitePure:
		if strings.Contains(dsn, "foreign_keys") {
			return dsn
		}
		param = "_pragma=foreign_keys(1)"
	default:
		return dsn
	}

	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		dsn = "file:" + dsn
	} else if dsn == ":memory:" {
		dsn = "file::memory:"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + param
}

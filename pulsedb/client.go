package pulsedb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
	"pulseinsights.org/internal/appconf"
	"pulseinsights.org/internal/logging"
)

//go:embed schema.sql
var ddl string

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Client is the main entry point for the library
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient opens the database described by config and, when requested,
// applies the embedded schema.
func NewClient(config Config) (*Client, error) {
	if config.Driver != DriverMySQL && config.Driver != DriverSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, config.Driver)
	}
	if config.Env == appconf.Test && config.Driver == DriverSQLite && config.DSN != ":memory:" {
		return nil, fmt.Errorf("test database must be in memory, got %q", config.DSN)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	configureConnectionPool(db, config)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if config.Migrate {
		if err := performDatabaseMigration(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error performing database migration: %w", err)
		}
		if config.verbose {
			logging.LogOperation(logger, "schema_applied",
				slog.String("driver", config.Driver),
				slog.String("component", "pulsedb"))
		}
	}

	return &Client{
		config: config,
		DB:     db,
		logger: logger,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// configureConnectionPool sizes the pool. An in-memory SQLite database lives
// inside a single connection, so the pool is pinned to one.
func configureConnectionPool(db *sql.DB, config Config) {
	if config.Driver == DriverSQLite && config.DSN == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}

// collect drains rows through scan and closes them. A failed close is
// logged and returned when the scan itself succeeded.
func collect[T any](c *Client, rows *sql.Rows, scan func(*sql.Rows) (T, error)) (out []T, err error) {
	defer logging.HandleDeferredError(&err, rows.Close, c.logger, "close_rows")

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

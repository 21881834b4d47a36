package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options describes how to reach the store.
type Options struct {
	Driver string
	// DSN is a file path (or ":memory:") for SQLite, a connection URL for Postgres.
	DSN         string
	BusyTimeout time.Duration
	LockTimeout time.Duration
}

// Store is the lifetime-scoped handle to the relational store. It is built
// once by the entrypoint and passed to everything that needs the database.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Open connects to the store described by opts.
func Open(ctx context.Context, opts Options) (*Store, error) {
	switch strings.ToLower(opts.Driver) {
	case "", DriverSQLite:
		return OpenSQLite(ctx, opts.DSN, opts.BusyTimeout)
	case DriverPostgres, "pgx":
		return OpenPostgres(ctx, opts.DSN, opts.LockTimeout)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// OpenSQLite opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database restricted to a single
// connection so every caller sees the same data.
// Transactions begin IMMEDIATE so a writer holds the database write lock
// from BEGIN until COMMIT or ROLLBACK.
func OpenSQLite(ctx context.Context, path string, busyTimeout time.Duration) (*Store, error) {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	memory := path == ":memory:"
	if !memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	q := url.Values{}
	q.Set("_txlock", "immediate")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	if !memory {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	dsn := "file:" + path + "?" + q.Encode()

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if memory {
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}

	return &Store{DB: conn, Dialect: SQLite{}}, nil
}

// OpenPostgres opens a Postgres connection pool through the pgx stdlib driver.
func OpenPostgres(ctx context.Context, dsn string, lockTimeout time.Duration) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &Store{DB: conn, Dialect: Postgres{LockTimeout: lockTimeout}}, nil
}

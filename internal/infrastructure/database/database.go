package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	dirPermissions  = 0750
	filePermissions = 0600

	msPerSecond = 1000

	// openTimeout bounds the connectivity check after opening.
	openTimeout = 5 * time.Second

	connMaxIdleTime = 30 * time.Minute
)

// DB is the SQLite handle backing the sample archive. It embeds
// sql.DB, so the archive issues queries against it directly; this
// wrapper owns opening, pragmas and lifecycle.
type DB struct {
	*sql.DB
	path string
}

// Config selects the archive file and its write behaviour. It mirrors
// the database section of the configuration file.
type Config struct {
	// Path is the SQLite file; its directory is created on demand.
	Path string

	// WALMode turns on write-ahead logging, which lets the archive
	// take reads while the ingest loop is writing.
	WALMode bool

	// BusyTimeout is how long a statement waits on a lock, in
	// seconds, before failing with "database is locked".
	BusyTimeout int
}

// Open opens (creating if needed) the archive database and verifies
// it with a ping.
//
// The pool is pinned to a single connection: the archive has exactly
// one writer, the ingest loop, and SQLite serialises writers anyway.
// The file is chmodded to 0600 since archived telemetry is
// deployment-private.
func Open(cfg Config) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), dirPermissions); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path,
		cfg.BusyTimeout*msPerSecond,
	)
	if cfg.WALMode {
		connStr += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	db := &DB{DB: sqlDB, path: cfg.Path}

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		sqlDB.Close() //nolint:errcheck // best effort on the error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	// First run may not have materialised the file yet; permissions
	// land on the next Open in that case.
	_ = os.Chmod(cfg.Path, filePermissions)

	return db, nil
}

// Close releases the connection. Safe on a zero-value DB.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Path returns the archive file path.
func (db *DB) Path() string {
	return db.path
}

// HealthCheck runs a trivial query to prove the connection is alive.
func (db *DB) HealthCheck(ctx context.Context) error {
	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

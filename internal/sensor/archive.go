package sensor

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	defaultArchiveLimit = 50
	maxArchiveLimit     = 200
)

// ArchiveEntry is a single archived sample row.
//
// The archive is a diagnostic audit trail of every sample the
// pipeline accepted. It is not registry persistence: the registry is
// rebuilt from the stream each run regardless of what the archive
// holds.
type ArchiveEntry struct {
	// ID is the auto-incremented primary key for the archive row.
	ID int64 `json:"id"`

	// DeviceID is the identifier of the device the sample belongs to.
	DeviceID string `json:"device_id"`

	// Kind is the device kind at the time the sample was recorded.
	Kind Kind `json:"kind"`

	// Value is the sample as a float64 (barometric samples are
	// integral but stored in the same numeric column).
	Value float64 `json:"value"`

	// CreatedAt is the timestamp the sample was archived (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// SampleArchive stores and retrieves accepted samples.
//
// Implementations must use UTC timestamps.
type SampleArchive interface {
	// WriteSample archives one accepted sample.
	WriteSample(ctx context.Context, deviceID string, kind Kind, value float64) error

	// Recent returns recent archived samples for a device,
	// newest first.
	Recent(ctx context.Context, deviceID string, limit int) ([]ArchiveEntry, error)
}

// SQLiteSampleArchive implements SampleArchive using SQLite.
type SQLiteSampleArchive struct {
	db *sql.DB
}

// NewSQLiteSampleArchive creates a sample archive backed by the given
// open SQLite connection.
func NewSQLiteSampleArchive(db *sql.DB) *SQLiteSampleArchive {
	return &SQLiteSampleArchive{db: db}
}

// Init creates the samples table and its index if they do not exist.
func (a *SQLiteSampleArchive) Init(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS samples (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		device_id  TEXT NOT NULL,
		kind       TEXT NOT NULL,
		value      REAL NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_samples_device ON samples(device_id, created_at);`

	if _, err := a.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating samples table: %w", err)
	}
	return nil
}

// WriteSample inserts one archived sample row.
func (a *SQLiteSampleArchive) WriteSample(ctx context.Context, deviceID string, kind Kind, value float64) error {
	if deviceID == "" {
		return ErrInvalidID
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	_, err := a.db.ExecContext(ctx,
		"INSERT INTO samples (device_id, kind, value, created_at) VALUES (?, ?, ?, ?)",
		deviceID,
		string(kind),
		value,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting sample: %w", err)
	}
	return nil
}

// Recent returns archived samples for a device ordered newest first.
// The limit defaults to 50 and is clamped to 200.
func (a *SQLiteSampleArchive) Recent(ctx context.Context, deviceID string, limit int) ([]ArchiveEntry, error) {
	if deviceID == "" {
		return nil, ErrInvalidID
	}
	if limit <= 0 {
		limit = defaultArchiveLimit
	}
	if limit > maxArchiveLimit {
		limit = maxArchiveLimit
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT id, device_id, kind, value, created_at
		 FROM samples
		 WHERE device_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		deviceID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	defer rows.Close()

	entries := make([]ArchiveEntry, 0, limit)
	for rows.Next() {
		var entry ArchiveEntry
		var kind string
		if err := rows.Scan(&entry.ID, &entry.DeviceID, &kind, &entry.Value, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning sample row: %w", err)
		}
		entry.Kind = Kind(kind)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sample rows: %w", err)
	}

	return entries, nil
}

// Package sqlite implements core.Storage on a single SQLite table through
// sqlx and the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/introspection"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/aretw0/notes/pkg/core"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// DefaultFile is the database file created inside a storage directory.
const DefaultFile = "notes.db"

const schema = `CREATE TABLE IF NOT EXISTS storage (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

// item is one row of the storage table.
type item struct {
	Key   string `db:"key"`
	Value []byte `db:"value"`
}

// Storage implements core.Storage on SQLite.
type Storage struct {
	db     *sqlx.DB
	dsn    string
	logger *slog.Logger
}

// Config holds the configuration for the SQLite storage.
type Config struct {
	// Path is the database file. A directory, or a path without extension,
	// gets DefaultFile appended.
	// ":memory:" opens a private in-memory database.
	Path   string
	Logger *slog.Logger
}

// Open opens (creating if needed) the database and its table.
func Open(ctx context.Context, cfg Config) (*Storage, error) {
	dsn, err := resolveDSN(cfg.Path)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// A single connection: ":memory:" databases live per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create storage table: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("sqlite storage opened", "dsn", dsn)
	}
	return New(db, dsn, cfg.Logger), nil
}

// New wraps an open database whose storage table already exists.
func New(db *sqlx.DB, dsn string, logger *slog.Logger) *Storage {
	return &Storage{db: db, dsn: dsn, logger: logger}
}

func resolveDSN(path string) (string, error) {
	if path == "" || path == ":memory:" {
		return ":memory:", nil
	}
	dir, file := path, DefaultFile
	info, err := os.Stat(path)
	isFile := err == nil && !info.IsDir()
	if isFile || (err != nil && filepath.Ext(path) != "") {
		dir, file = filepath.Dir(path), filepath.Base(path)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create sqlite directory: %w", err)
	}
	return filepath.Join(dir, file), nil
}

// GetItem selects the value of key. A missing row reports ok=false.
func (s *Storage) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, core.ErrInvalidKey
	}
	var row item
	err := s.db.GetContext(ctx, &row, "SELECT key, value FROM storage WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get item %q: %w", key, err)
	}
	return row.Value, true, nil
}

// SetItem upserts the value of key.
func (s *Storage) SetItem(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.NamedExecContext(ctx,
		"INSERT INTO storage (key, value) VALUES (:key, :value) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		item{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	if s.logger != nil {
		s.logger.Debug("item written", "key", key, "bytes", len(value))
	}
	return nil
}

// RemoveItem deletes the row of key. A missing row is not an error.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove item %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in order.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys, "SELECT key FROM storage ORDER BY key"); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// StorageState exposes internal state for observability.
type StorageState struct {
	DSN         string `json:"dsn"`
	OpenConns   int    `json:"open_connections"`
	InUse       int    `json:"in_use"`
	WaitCount   int64  `json:"wait_count"`
	MaxOpenConn int    `json:"max_open_connections"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	stats := s.db.Stats()
	return StorageState{
		DSN:         s.dsn,
		OpenConns:   stats.OpenConnections,
		InUse:       stats.InUse,
		WaitCount:   stats.WaitCount,
		MaxOpenConn: stats.MaxOpenConnections,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite"
}

var (
	_ core.Storage                 = (*Storage)(nil)
	_ core.Closer                  = (*Storage)(nil)
	_ introspection.Introspectable = (*Storage)(nil)
	_ introspection.Component      = (*Storage)(nil)
)

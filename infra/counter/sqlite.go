// Package counter provides persistent counter backends.
package counter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	corecounter "github.com/kilianp07/ecoamp/core/counter"
	"github.com/kilianp07/ecoamp/core/factory"
	_ "modernc.org/sqlite"
)

func init() {
	if err := corecounter.RegisterBackend("sqlite", newSQLiteFromConf); err != nil {
		panic(err)
	}
}

func newSQLiteFromConf(conf map[string]any) (corecounter.Backend, error) {
	var c struct {
		Path string `json:"path"`
		Key  string `json:"key"`
	}
	if err := factory.Decode(conf, &c); err != nil {
		return nil, fmt.Errorf("sqlite counter conf: %w", err)
	}
	return NewSQLiteBackend(c.Path, c.Key)
}

// SQLiteBackend stores the counter under a single key in a SQLite database.
type SQLiteBackend struct {
	db  *sql.DB
	key string
}

// NewSQLiteBackend opens or creates the database at path and ensures schema.
// An empty key selects counter.DefaultKey.
func NewSQLiteBackend(path, key string) (*SQLiteBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite counter: path is required")
	}
	if key == "" {
		key = corecounter.DefaultKey
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	schema := `CREATE TABLE IF NOT EXISTS counters (
        key TEXT PRIMARY KEY,
        value INTEGER NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteBackend{db: db, key: key}, nil
}

// Load returns the stored value for the configured key.
func (s *SQLiteBackend) Load(ctx context.Context) (int64, bool, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE key = ?`, s.key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// Save upserts the value for the configured key.
func (s *SQLiteBackend) Save(ctx context.Context, v int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO counters (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value`, s.key, v)
	return err
}

// Close closes the underlying database.
func (s *SQLiteBackend) Close() error { return s.db.Close() }

// Package store handles SQLite persistence of user preferences.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/codetype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const (
	keyTheme      = "theme"
	keyLastSample = "last_sample"
)

// Store wraps SQLite access for preferences.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetPreference returns the stored value for key and whether it exists.
func (s *Store) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetPreference inserts or replaces the value for key.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Format(time.RFC3339Nano))
	return err
}

// Theme returns the stored theme, if any.
func (s *Store) Theme(ctx context.Context) (model.Theme, bool, error) {
	value, ok, err := s.GetPreference(ctx, keyTheme)
	if err != nil || !ok {
		return "", false, err
	}
	theme, err := model.ParseTheme(value)
	if err != nil {
		// Ignore values written by a different version.
		return "", false, nil
	}
	return theme, true, nil
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(ctx context.Context, theme model.Theme) error {
	return s.SetPreference(ctx, keyTheme, string(theme))
}

// LastSample returns the id of the most recently selected sample.
func (s *Store) LastSample(ctx context.Context) (string, bool, error) {
	return s.GetPreference(ctx, keyLastSample)
}

// SetLastSample records the most recently selected sample.
func (s *Store) SetLastSample(ctx context.Context, id string) error {
	return s.SetPreference(ctx, keyLastSample, id)
}

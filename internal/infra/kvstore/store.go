// Package kvstore provides the SQLite-backed key-value collaborator
// the progression engine persists its state slices into.
// The store holds opaque string blobs only — all encoding and decoding
// belongs to the engine. Uses WAL mode for crash-safe writes.
package kvstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Store wraps a SQLite connection exposing string-keyed get/set.
type Store struct {
	db *sql.DB
}

// Open creates or opens the store at dir/progression.db.
// Enables WAL mode and a 5-second busy timeout.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "progression.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close cleanly shuts down the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs the idempotent schema migration.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS progression_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create progression_state: %w", err)
	}
	return nil
}

// Set stores a key-value pair, replacing any existing value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO progression_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Get retrieves a value by key. The second return is false when the
// key has never been written.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM progression_state WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Delete removes a key. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM progression_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

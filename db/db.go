package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Durable client-state keys. Each is independently settable and clearable;
// Reset wipes all of them in one transaction.
const (
	KeyCurrentView        = "currentView"
	KeyAdminAuthenticated = "adminAuthenticated"
	KeyAdminToken         = "adminToken"
)

// Store is the durable client-side state store, the browser-localStorage
// counterpart of this client.
type Store struct {
	conn *sql.DB
}

// Open creates or opens the sqlite state database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS client_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create client_state table: %w", err)
	}

	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Get returns the stored value for key, or "" when the key is absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM client_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state key %s: %w", key, err)
	}
	return value, nil
}

// Set writes the value for key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT INTO client_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write state key %s: %w", key, err)
	}
	return nil
}

// Delete removes a single key.
func (s *Store) Delete(key string) error {
	if _, err := s.conn.Exec("DELETE FROM client_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete state key %s: %w", key, err)
	}
	return nil
}

// Reset wipes the view and admin session keys atomically.
func (s *Store) Reset() error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin state reset: %w", err)
	}
	for _, key := range []string{KeyCurrentView, KeyAdminAuthenticated, KeyAdminToken} {
		if _, err := tx.Exec("DELETE FROM client_state WHERE key = ?", key); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to reset state key %s: %w", key, err)
		}
	}
	return tx.Commit()
}

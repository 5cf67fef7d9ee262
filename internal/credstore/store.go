// ABOUTME: SQLite-backed key-value store for the persisted session
// ABOUTME: Load never fails; save/clear degrade silently to "not persisted"

package credstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ragops/kbconsole/internal/gateway"
)

// Session keys mirrored from the in-memory session.
const (
	keyToken       = "token"
	keyUser        = "user"
	keyPermissions = "permissions"
)

// Preference keys that survive Clear.
const (
	KeyRememberedUsername = "remembered_username"
	KeyTheme              = "theme"
	KeySidebarCollapsed   = "sidebar_collapsed"
	KeyRedirectTarget     = "redirect_after_login"
)

// Snapshot is the persisted mirror of the session. Zero values mean
// "nothing persisted".
type Snapshot struct {
	Token       string
	User        *gateway.User
	Permissions []string
}

// Store is a sqlite-backed key-value store. All methods are safe for
// concurrent use (serialized by database/sql).
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the store at path. Parent directories are created
// if needed.
func Open(path string) (*Store, error) {
	logger := slog.Default().With("component", "credstore")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the persisted session snapshot. Missing rows and corrupt
// JSON yield zero values; Load itself never fails.
func (s *Store) Load() Snapshot {
	var snap Snapshot

	snap.Token = s.Get(keyToken)

	if raw := s.Get(keyUser); raw != "" {
		var user gateway.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.logger.Warn("discarding corrupt persisted user", "error", err)
		} else {
			snap.User = &user
		}
	}

	if raw := s.Get(keyPermissions); raw != "" {
		var perms []string
		if err := json.Unmarshal([]byte(raw), &perms); err != nil {
			s.logger.Warn("discarding corrupt persisted permissions", "error", err)
		} else {
			snap.Permissions = perms
		}
	}

	return snap
}

// Save writes the session snapshot through to disk. Failures are logged
// and swallowed: persistence is a convenience, not a correctness
// requirement.
func (s *Store) Save(token string, user *gateway.User, permissions []string) {
	s.Set(keyToken, token)

	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			s.logger.Warn("not persisting user", "error", err)
		} else {
			s.Set(keyUser, string(data))
		}
	} else {
		s.Delete(keyUser)
	}

	if permissions == nil {
		permissions = []string{}
	}
	data, err := json.Marshal(permissions)
	if err != nil {
		s.logger.Warn("not persisting permissions", "error", err)
		return
	}
	s.Set(keyPermissions, string(data))
}

// Clear removes the persisted session atomically. Preference keys are
// preserved.
func (s *Store) Clear() {
	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Warn("clearing persisted session", "error", err)
		return
	}

	for _, key := range []string{keyToken, keyUser, keyPermissions} {
		if _, err := tx.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
			s.logger.Warn("clearing persisted session", "key", key, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Warn("clearing persisted session", "error", err)
	}
}

// Get returns the value for key, or "" when absent or unreadable.
func (s *Store) Get(key string) string {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("reading key", "key", key, "error", err)
		}
		return ""
	}
	return value
}

// Set upserts a value. Failures are logged and swallowed.
func (s *Store) Set(key, value string) {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		s.logger.Warn("writing key", "key", key, "error", err)
	}
}

// Delete removes a key. Failures are logged and swallowed.
func (s *Store) Delete(key string) {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		s.logger.Warn("deleting key", "key", key, "error", err)
	}
}

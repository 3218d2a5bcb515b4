package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Store persists each named slice of application state as a JSON blob
// in a single key/value table. Corrupt or missing values fall back to
// defaults; readers never see an error for bad stored data.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS slices (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Slice keys. Each is an independently persisted JSON blob.
const (
	KeyDurations      = "durations"
	KeyTodos          = "todos"
	KeyProjects       = "projects"
	KeyDailyStats     = "daily_stats"
	KeyAchievements   = "achievements"
	KeySettings       = "settings"
	KeyCurrentProject = "current_project"
	KeyCurrentTask    = "current_task"
	KeyQuickNotes     = "quick_notes"
	KeySoundPresets   = "sound_presets"
)

// loadSlice unmarshals the stored blob for key into v. It reports
// false when the key is absent or the stored JSON is corrupt, leaving
// v untouched so the caller's default survives.
func (s *Store) loadSlice(key string, v any) bool {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM slices WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false
	}
	return true
}

func (s *Store) saveSlice(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slice %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO slices (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save slice %q: %w", key, err)
	}
	return nil
}

// HasSlice reports whether a value has ever been written for key.
func (s *Store) HasSlice(key string) bool {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM slices WHERE key = ?`, key).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

// DefaultDBPath returns ~/.config/podomo/podomo.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "podomo", "podomo.db"), nil
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"kibble-ration/internal/model"
)

// SQLiteStore keeps the snapshot in a key/value table and appends every
// saved snapshot to a history table.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// HistoryEntry is one previously saved snapshot.
type HistoryEntry struct {
	SavedAt time.Time
	Config  model.RationConfig
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snapshot_history (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_key_ts ON snapshot_history(key, created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Load reads the current snapshot.
func (s *SQLiteStore) Load() (*model.RationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, SnapshotKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return Decode([]byte(value))
}

// Save upserts the snapshot and records it in the history, atomically.
func (s *SQLiteStore) Save(cfg model.RationConfig) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		SnapshotKey, string(data), now,
	); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO snapshot_history (key, value, created_at) VALUES (?, ?, ?)`,
		SnapshotKey, string(data), now,
	); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return tx.Commit()
}

// History returns up to limit saved snapshots, newest first. Rows that no
// longer decode are skipped.
func (s *SQLiteStore) History(limit int) ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT value, created_at FROM snapshot_history
		 WHERE key = ? ORDER BY id DESC LIMIT ?`,
		SnapshotKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var value string
		var ts int64
		if err := rows.Scan(&value, &ts); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		cfg, err := Decode([]byte(value))
		if err != nil {
			continue
		}
		out = append(out, HistoryEntry{SavedAt: time.UnixMilli(ts), Config: *cfg})
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

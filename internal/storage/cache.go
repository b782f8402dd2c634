// Package storage persists the last successful snapshot so the session can fall back to it.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"skycast/internal/models"
	"skycast/pkg/logger"
)

// CacheKey is the single slot the snapshot is stored under. There are no per-city entries.
const CacheKey = "weatherData"

const createTable = `CREATE TABLE IF NOT EXISTS cache (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	fetched_at TEXT NOT NULL
)`

type CacheStore struct {
	db  *sql.DB
	l   *logger.Logger
	now func() time.Time
}

type Option func(*CacheStore)

// WithClock replaces time.Now for the fetched_at stamp.
func WithClock(now func() time.Time) Option {
	return func(s *CacheStore) {
		s.now = now
	}
}

// Open creates the database file and its parent directory if needed.
func Open(path string, l *logger.Logger, opts ...Option) (*CacheStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, unavailable("create cache directory", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, unavailable("open cache", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTable); err != nil {
		_ = db.Close()
		return nil, unavailable("create cache table", err)
	}

	s := &CacheStore{db: db, l: l, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if l != nil {
		l.Info("cache store opened", map[string]any{"path": path})
	}

	return s, nil
}

func (s *CacheStore) Close() error {
	return s.db.Close()
}

// Put overwrites the stored snapshot and stamps it with the current time.
func (s *CacheStore) Put(ctx context.Context, snapshot models.Snapshot) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return unavailable("encode snapshot", err)
	}

	fetchedAt := s.now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cache (key, value, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, fetched_at = excluded.fetched_at`,
		CacheKey, string(value), fetchedAt)
	if err != nil {
		return unavailable("write snapshot", err)
	}

	return nil
}

// Get returns the stored snapshot. The bool is false when nothing was ever written.
func (s *CacheStore) Get(ctx context.Context) (models.CacheRecord, bool, error) {
	var value, fetchedAt string
	err := s.db.QueryRowContext(ctx, "SELECT value, fetched_at FROM cache WHERE key = ?", CacheKey).
		Scan(&value, &fetchedAt)
	if err == sql.ErrNoRows {
		return models.CacheRecord{}, false, nil
	}
	if err != nil {
		return models.CacheRecord{}, false, unavailable("read snapshot", err)
	}

	var record models.CacheRecord
	if err := json.Unmarshal([]byte(value), &record.Snapshot); err != nil {
		return models.CacheRecord{}, false, unavailable("decode snapshot", err)
	}
	if record.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt); err != nil {
		return models.CacheRecord{}, false, unavailable("parse fetched_at", err)
	}

	return record, true, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, models.ErrStorageUnavailable, err)
}

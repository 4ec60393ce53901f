package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps cache entries in a SQLite database. With the default
// ":memory:" path nothing outlives the process.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// An in-memory database exists per connection.
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

	log.Printf("[INFO] sqlite cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS refresh_cache (
			cache_key  TEXT PRIMARY KEY,
			stored_at  INTEGER NOT NULL,
			expires_at INTEGER NOT NULL,
			payload    BLOB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_cache_expires ON refresh_cache(expires_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) (*Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM refresh_cache WHERE cache_key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	var e Entry
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return &e, true, nil
}

// Save upserts the entry and purges rows past their expiry.
func (s *SQLiteStore) Save(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	now := time.Now()
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM refresh_cache WHERE expires_at < ?`, now.UnixNano()); err != nil {
		return fmt.Errorf("purge expired: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO refresh_cache
		(cache_key, stored_at, expires_at, payload)
		VALUES (?,?,?,?)
		ON CONFLICT(cache_key) DO UPDATE SET
			stored_at = excluded.stored_at,
			expires_at = excluded.expires_at,
			payload = excluded.payload`,
		key, entry.StoredAt.UnixNano(), now.Add(ttl).UnixNano(), payload,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite cache")
	return s.db.Close()
}

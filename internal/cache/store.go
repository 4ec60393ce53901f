package cache

import (
	"context"
	"time"

	"StockWatch/internal/model"
)

// Entry is a cached refresh report and the time it was stored.
type Entry struct {
	Report   *model.RefreshReport `json:"report"`
	StoredAt time.Time            `json:"stored_at"`
}

// Store persists cache entries for a backend. Load reports found=false for
// a missing key; expiry is judged by Cache, not the store.
type Store interface {
	Load(ctx context.Context, key string) (entry *Entry, found bool, err error)
	Save(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	Close() error
}

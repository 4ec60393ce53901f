// Package cache memoizes watchlist refreshes for a fixed time window.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"StockWatch/internal/model"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a refresh stays valid.
const DefaultTTL = time.Hour

// Key identifies a refresh: the exact tickers in order, and the period.
type Key struct {
	Tickers []string     `json:"tickers"`
	Period  model.Period `json:"period"`
}

// String renders the key as JSON, so two keys render the same only when
// they hold the same tickers in the same order and the same period.
func (k Key) String() string {
	if k.Tickers == nil {
		k.Tickers = []string{}
	}
	b, _ := json.Marshal(k)
	return string(b)
}

// ComputeFunc produces a fresh report on a miss.
type ComputeFunc func(ctx context.Context) (*model.RefreshReport, error)

// Cache is a time-boxed memo in front of a Store.
type Cache struct {
	Store Store
	TTL   time.Duration
	Now   func() time.Time

	group singleflight.Group
}

// New creates a Cache over store. A non-positive ttl means DefaultTTL.
func New(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{Store: store, TTL: ttl, Now: time.Now}
}

// GetOrCompute returns the stored report for key while it is younger than
// the TTL. Otherwise it runs compute, stores the result and returns it.
// Concurrent misses on the same key share one compute. Errors from compute
// are returned and never stored.
func (c *Cache) GetOrCompute(ctx context.Context, key Key, compute ComputeFunc) (report *model.RefreshReport, hit bool, err error) {
	k := key.String()
	if e, ok := c.lookup(ctx, k); ok {
		return e.Report, true, nil
	}

	v, err, _ := c.group.Do(k, func() (interface{}, error) {
		// another caller may have filled it while we waited
		if e, ok := c.lookup(ctx, k); ok {
			return e.Report, nil
		}
		r, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		entry := &Entry{Report: r, StoredAt: c.Now()}
		if err := c.Store.Save(ctx, k, entry, c.TTL); err != nil {
			log.Printf("[WARN] cache save %s: %v", k, err)
		}
		return r, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*model.RefreshReport), false, nil
}

func (c *Cache) lookup(ctx context.Context, k string) (*Entry, bool) {
	e, ok, err := c.Store.Load(ctx, k)
	if err != nil {
		log.Printf("[WARN] cache load %s: %v", k, err)
		return nil, false
	}
	if !ok || e == nil || e.Report == nil {
		return nil, false
	}
	if c.Now().Sub(e.StoredAt) >= c.TTL {
		return nil, false
	}
	return e, true
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.Store.Close()
}

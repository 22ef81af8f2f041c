// Package cache provides persistent caching for fetched EOL cycle tables.
//
// Unlike a plain TTL cache, entries are never evicted on expiry: the registry
// needs stale data as a fallback when a refresh fetch fails. Each entry
// carries its fetch timestamp, and freshness is decided by the caller against
// its own TTL. Backends:
//   - FileStore: one JSON file per key in a cache directory (default)
//   - RedisStore: shared cache for team deployments
//   - NullStore: caching disabled
package cache

import (
	"context"
	"time"
)

// Entry wraps cached data with its fetch timestamp.
type Entry struct {
	Data      []byte    `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fresh reports whether the entry was fetched within ttl of now.
// A ttl of 0 means entries never go stale.
func (e *Entry) Fresh(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(e.FetchedAt) <= ttl
}

// Store is the interface for cache backends.
//
// Get returns (nil, nil) on a miss. A returned entry may be stale; callers
// check Entry.Fresh against their own TTL and decide whether to refetch.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}

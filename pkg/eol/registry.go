package eol

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eolscan/eolscan/pkg/cache"
	"github.com/eolscan/eolscan/pkg/detect"
)

// DefaultTTL is the freshness window for cached cycle tables.
const DefaultTTL = 24 * time.Hour

// Registry serves per-product EOL cycle tables and resolves versions
// against them. Tables are fetched at most once per freshness window; on a
// fetch failure the most recent cached table is used regardless of age, and
// only with no cache at all does the product's data read as unavailable.
type Registry struct {
	client *Client
	store  cache.Store
	ttl    time.Duration
	logger *log.Logger

	// tables memoizes per-product results within one process run, so a
	// bulk rescan fetches each product at most once.
	tables map[Product][]Cycle
}

// NewRegistry creates a registry. A nil store disables caching; a nil
// logger uses the default.
func NewRegistry(client *Client, store cache.Store, ttl time.Duration, logger *log.Logger) *Registry {
	if client == nil {
		client = NewClient("")
	}
	if store == nil {
		store = cache.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger,
		tables: make(map[Product][]Cycle),
	}
}

// EOLFor resolves a detected version string to its EOL value. The version
// is normalized before matching, so labeled fallback values like
// "1.5.4 (pg gem)" resolve on their numeric part. ok is false when the
// product's table is unavailable or no cycle matches; that is "unknown",
// never an error.
func (r *Registry) EOLFor(ctx context.Context, p Product, version string) (EOLValue, bool) {
	cycles, ok := r.Cycles(ctx, p)
	if !ok {
		return EOLValue{}, false
	}
	c, ok := MatchCycle(cycles, detect.Normalize(version))
	if !ok {
		return EOLValue{}, false
	}
	return c.EOL, true
}

// Cycles returns a product's cycle table, consulting the in-process memo,
// then the cache, then the network.
func (r *Registry) Cycles(ctx context.Context, p Product) ([]Cycle, bool) {
	if cycles, ok := r.tables[p]; ok {
		return cycles, cycles != nil
	}
	cycles := r.load(ctx, p)
	r.tables[p] = cycles
	return cycles, cycles != nil
}

func (r *Registry) load(ctx context.Context, p Product) []Cycle {
	key := "eol:" + p.Slug()

	entry, err := r.store.Get(ctx, key)
	if err != nil {
		r.logger.Debug("cache read failed", "product", p.Slug(), "err", err)
		entry = nil
	}
	now := time.Now()
	if entry != nil && entry.Fresh(r.ttl, now) {
		if cycles := parseCycles(entry.Data); cycles != nil {
			return cycles
		}
	}

	data, err := r.client.Fetch(ctx, p)
	if err == nil {
		if cycles := parseCycles(data); cycles != nil {
			if err := r.store.Set(ctx, key, data); err != nil {
				r.logger.Debug("cache write failed", "product", p.Slug(), "err", err)
			}
			return cycles
		}
		err = ErrNotFound
	}

	// Fetch failed: a stale table beats no table.
	if entry != nil {
		if cycles := parseCycles(entry.Data); cycles != nil {
			r.logger.Warn("using stale EOL data",
				"product", p.Slug(),
				"age", now.Sub(entry.FetchedAt).Round(time.Hour),
				"err", err)
			return cycles
		}
	}
	r.logger.Warn("EOL data unavailable", "product", p.Slug(), "err", err)
	return nil
}

func parseCycles(data []byte) []Cycle {
	var cycles []Cycle
	if err := json.Unmarshal(data, &cycles); err != nil || len(cycles) == 0 {
		return nil
	}
	return cycles
}

package eol

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eolscan/eolscan/pkg/cache"
)

func newTestRegistry(t *testing.T, handler http.Handler) (*Registry, *cache.FileStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := cache.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRegistry(NewClient(srv.URL), store, DefaultTTL, nil), store
}

func rubyTable() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ruby.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"cycle":"3.3","eol":"2027-03-31","latest":"3.3.6"}]`))
	})
}

func TestRegistryFetchAndResolve(t *testing.T) {
	reg, _ := newTestRegistry(t, rubyTable())
	v, ok := reg.EOLFor(context.Background(), ProductRuby, "3.3.0")
	if !ok {
		t.Fatal("expected a resolution")
	}
	if got := v.Date.Format("2006-01-02"); got != "2027-03-31" {
		t.Errorf("EOL date = %s", got)
	}
}

func TestRegistryNormalizesBeforeMatching(t *testing.T) {
	reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"cycle":"1.5","eol":"2027-01-01"}]`))
	}))
	// Labeled gem-fallback values resolve on their numeric part.
	if _, ok := reg.EOLFor(context.Background(), ProductPostgreSQL, "1.5.4 (pg gem)"); !ok {
		t.Error("labeled version should normalize and match")
	}
}

func TestRegistryMemoizesWithinRun(t *testing.T) {
	var hits atomic.Int32
	reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[{"cycle":"3.3","eol":"2027-03-31"}]`))
	}))

	ctx := context.Background()
	reg.EOLFor(ctx, ProductRuby, "3.3.0")
	reg.EOLFor(ctx, ProductRuby, "3.3.4")
	if hits.Load() != 1 {
		t.Errorf("fetches = %d, want 1 per product per run", hits.Load())
	}
}

func TestRegistryUsesFreshCacheWithoutFetching(t *testing.T) {
	store, err := cache.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Set(ctx, "eol:ruby", []byte(`[{"cycle":"3.3","eol":"2027-03-31"}]`)); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("fresh cache should prevent any fetch")
	}))
	defer srv.Close()

	reg := NewRegistry(NewClient(srv.URL), store, DefaultTTL, nil)
	if _, ok := reg.EOLFor(ctx, ProductRuby, "3.3.0"); !ok {
		t.Error("expected resolution from cache")
	}
}

func TestRegistryStaleFallbackOnFetchFailure(t *testing.T) {
	reg, store := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	ctx := context.Background()
	if err := store.Set(ctx, "eol:ruby", []byte(`[{"cycle":"3.3","eol":"2027-03-31"}]`)); err != nil {
		t.Fatal(err)
	}
	// Registry with a 0-duration window would still be fresh; force
	// staleness by using a tiny TTL and waiting it out.
	reg.ttl = time.Millisecond
	time.Sleep(5 * time.Millisecond)

	if _, ok := reg.EOLFor(ctx, ProductRuby, "3.3.0"); !ok {
		t.Error("stale cache should serve when the fetch fails")
	}
}

func TestRegistryUnavailableWithoutAnyCache(t *testing.T) {
	reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	if _, ok := reg.EOLFor(context.Background(), ProductRuby, "3.3.0"); ok {
		t.Error("no cache and failed fetch should read as unavailable")
	}
}

func TestRegistryNotFoundProduct(t *testing.T) {
	reg, _ := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	if _, ok := reg.Cycles(context.Background(), ProductRedis); ok {
		t.Error("404 with no cache should read as unavailable")
	}
}

func TestProductSlugs(t *testing.T) {
	want := map[Product]string{
		ProductRuby:       "ruby",
		ProductRails:      "rails",
		ProductPostgreSQL: "postgresql",
		ProductMySQL:      "mysql",
		ProductRedis:      "redis",
		ProductMongoDB:    "mongodb",
		ProductPython:     "python",
		ProductNodeJS:     "nodejs",
		ProductRust:       "rust",
		ProductGo:         "go",
	}
	for p, slug := range want {
		if p.Slug() != slug {
			t.Errorf("Slug(%d) = %q, want %q", p, p.Slug(), slug)
		}
	}
}

package cache

import "context"

// NullStore is a no-op store that never caches anything.
// Used when caching is disabled via --no-cache.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore { return &NullStore{} }

// Get always reports a miss.
func (s *NullStore) Get(ctx context.Context, key string) (*Entry, error) { return nil, nil }

// Set does nothing.
func (s *NullStore) Set(ctx context.Context, key string, data []byte) error { return nil }

// Close does nothing.
func (s *NullStore) Close() error { return nil }

var _ Store = (*NullStore)(nil)

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisRetention bounds how long stale entries survive in Redis. Entries must
// outlive the freshness TTL so the registry can fall back to stale data, but
// a shared Redis should not accumulate dead products forever.
const redisRetention = 30 * 24 * time.Hour

// RedisStore is a Redis-backed cache for shared/team deployments where
// several hosts should reuse the same fetched EOL tables.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to addr and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client, prefix: "eolscan:"}, nil
}

// Get retrieves an entry by key. Returns (nil, nil) on a miss.
func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = s.client.Del(ctx, s.prefix+key).Err()
		return nil, nil
	}
	return &e, nil
}

// Set stores data under key, stamping it with the current time.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	raw, err := json.Marshal(Entry{Data: data, FetchedAt: time.Now()})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, raw, redisRetention).Err()
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)

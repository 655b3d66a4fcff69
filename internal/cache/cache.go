// Package cache stores upstream responses that are safe to reuse, such as
// dictionary lookups and carbon estimates.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache stores entries in Redis under a common prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a cache that namespaces keys with prefix.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// DefaultMaxEntries bounds a MemoryCache built by NewMemoryCache.
const DefaultMaxEntries = 10000

type entry struct {
	value   []byte
	expires time.Time
	seq     uint64
}

// MemoryCache is a process-local Cache. Once full it drops expired entries,
// then the oldest ones, to make room.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
	max     int
	seq     uint64
}

// NewMemoryCache creates an empty in-memory cache of DefaultMaxEntries.
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheSize(DefaultMaxEntries)
}

// NewMemoryCacheSize creates an empty in-memory cache holding at most size
// entries. Non-positive sizes fall back to DefaultMaxEntries.
func NewMemoryCacheSize(size int) *MemoryCache {
	if size <= 0 {
		size = DefaultMaxEntries
	}
	return &MemoryCache{entries: make(map[string]entry), now: time.Now, max: size}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return nil, ErrMiss
	}
	return e.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.max {
		c.sweep(now)
		if len(c.entries) >= c.max {
			c.evictOldest()
		}
	}

	c.seq++
	e := entry{value: append([]byte(nil), value...), seq: c.seq}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

func (c *MemoryCache) sweep(now time.Time) {
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
}

func (c *MemoryCache) evictOldest() {
	var oldest string
	var seq uint64
	for k, e := range c.entries {
		if seq == 0 || e.seq < seq {
			oldest, seq = k, e.seq
		}
	}
	delete(c.entries, oldest)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/greenmeal/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "tomato", []byte("1"), time.Minute))
	v, err := c.Get(ctx, "tomato")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	now = now.Add(2 * time.Minute)
	_, err = c.Get(ctx, "tomato")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "forever", []byte("x"), 0))
	now = now.Add(24 * time.Hour)
	_, err = c.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryCacheBounded(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCacheSize(2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "dictionary:kale", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "carbon:kale", []byte("b"), 0))
	now = now.Add(2 * time.Minute)

	// the expired entry goes first, even though nobody read it
	require.NoError(t, c.Set(ctx, "carbon:leek", []byte("c"), 0))
	assert.Equal(t, 2, c.Len())
	_, err := c.Get(ctx, "carbon:kale")
	assert.NoError(t, err)

	// nothing expired, so the oldest entry makes room
	require.NoError(t, c.Set(ctx, "carbon:okra", []byte("d"), 0))
	assert.Equal(t, 2, c.Len())
	_, err = c.Get(ctx, "carbon:kale")
	assert.ErrorIs(t, err, ErrMiss)

	// overwriting a present key never evicts
	require.NoError(t, c.Set(ctx, "carbon:leek", []byte("e"), 0))
	v, err := c.Get(ctx, "carbon:okra")
	require.NoError(t, err)
	assert.Equal(t, []byte("d"), v)
	v, err = c.Get(ctx, "carbon:leek")
	require.NoError(t, err)
	assert.Equal(t, []byte("e"), v)

	assert.Equal(t, DefaultMaxEntries, NewMemoryCacheSize(0).max)
}

func TestRedisCache(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	ctx := context.Background()
	c := NewRedisCache(client, "test:")

	_, err := c.Get(ctx, "onion")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "onion", []byte("ok"), time.Minute))
	v, err := c.Get(ctx, "onion")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), v)

	exists, err := client.Exists(ctx, "test:onion").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

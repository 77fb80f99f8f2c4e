package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, "test:pages", ttl), mr
}

func TestCacheSetAndGet(t *testing.T) {
	cache, _ := newTestCache(t, 20*time.Second)
	ctx := context.Background()

	entry := &Entry{
		Status:      200,
		ContentType: "application/json",
		Body:        []byte(`{"posts":[]}`),
	}
	require.NoError(t, cache.Set(ctx, "/api/v1/posts?page=1", entry))

	got, ok := cache.Get(ctx, "/api/v1/posts?page=1")
	require.True(t, ok)
	assert.Equal(t, entry.Status, got.Status)
	assert.Equal(t, entry.ContentType, got.ContentType)
	assert.Equal(t, entry.Body, got.Body)
}

func TestCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, 20*time.Second)

	_, ok := cache.Get(context.Background(), "/api/v1/posts")
	assert.False(t, ok)
}

func TestCacheKeysAreURLSpecific(t *testing.T) {
	cache, _ := newTestCache(t, 20*time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "/api/v1/posts?page=1", &Entry{Status: 200, Body: []byte("one")}))
	require.NoError(t, cache.Set(ctx, "/api/v1/posts?page=2", &Entry{Status: 200, Body: []byte("two")}))

	got, ok := cache.Get(ctx, "/api/v1/posts?page=2")
	require.True(t, ok)
	assert.Equal(t, []byte("two"), got.Body)
}

func TestCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t, 20*time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "/api/v1/posts", &Entry{Status: 200, Body: []byte("x")}))

	_, ok := cache.Get(ctx, "/api/v1/posts")
	require.True(t, ok)

	mr.FastForward(21 * time.Second)

	_, ok = cache.Get(ctx, "/api/v1/posts")
	assert.False(t, ok)
}

func TestCacheInvalidateAll(t *testing.T) {
	cache, _ := newTestCache(t, 20*time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "/api/v1/posts", &Entry{Status: 200, Body: []byte("a")}))
	require.NoError(t, cache.Set(ctx, "/api/v1/groups", &Entry{Status: 200, Body: []byte("b")}))

	require.NoError(t, cache.InvalidateAll(ctx))

	_, ok := cache.Get(ctx, "/api/v1/posts")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "/api/v1/groups")
	assert.False(t, ok)
}

func TestCacheDropsCorruptEntries(t *testing.T) {
	cache, mr := newTestCache(t, 20*time.Second)
	ctx := context.Background()

	require.NoError(t, mr.Set("test:pages:/api/v1/posts", "not json"))

	_, ok := cache.Get(ctx, "/api/v1/posts")
	assert.False(t, ok)

	// The corrupt entry is removed so the next request repopulates it
	assert.False(t, mr.Exists("test:pages:/api/v1/posts"))
}

package ocean

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	entry := &CacheEntry{Data: []byte("regions"), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, cache.Set(ctx, "catalog/regions", entry))

	got, err := cache.Get(ctx, "catalog/regions")
	require.NoError(t, err)
	assert.Equal(t, []byte("regions"), got.Data)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "absent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCacheKeyNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	entry := &CacheEntry{Data: []byte("stale"), ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, cache.Set(ctx, "catalog/regions", entry))

	_, err := cache.Get(ctx, "catalog/regions")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCacheEntryExpired)

	// The expired entry is removed on read.
	_, err = cache.Get(ctx, "catalog/regions")
	assert.ErrorIs(t, err, ErrCacheKeyNotFound)
}

func TestMemoryCache_EvictsOldestWhenFull(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(2)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, cache.Set(ctx, "oldest", &CacheEntry{Data: []byte("a"), ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, cache.Set(ctx, "newer", &CacheEntry{Data: []byte("b"), ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, cache.Set(ctx, "newest", &CacheEntry{Data: []byte("c"), ExpiresAt: now.Add(2 * time.Hour)}))

	assert.False(t, cache.Has(ctx, "oldest"))
	assert.True(t, cache.Has(ctx, "newer"))
	assert.True(t, cache.Has(ctx, "newest"))
}

func TestMemoryCache_SetExistingKeyDoesNotEvict(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(2)
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	require.NoError(t, cache.Set(ctx, "a", &CacheEntry{Data: []byte("1"), ExpiresAt: expiry}))
	require.NoError(t, cache.Set(ctx, "b", &CacheEntry{Data: []byte("2"), ExpiresAt: expiry}))
	require.NoError(t, cache.Set(ctx, "a", &CacheEntry{Data: []byte("3"), ExpiresAt: expiry}))

	assert.True(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	got, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got.Data)
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	require.NoError(t, cache.Set(ctx, "a", &CacheEntry{ExpiresAt: expiry}))
	require.NoError(t, cache.Set(ctx, "b", &CacheEntry{ExpiresAt: expiry}))

	require.NoError(t, cache.Delete(ctx, "a"))
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "b"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "live", &CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, cache.Set(ctx, "stale", &CacheEntry{ExpiresAt: time.Now().Add(-time.Minute)}))

	cache.Cleanup()

	assert.True(t, cache.Has(ctx, "live"))
	assert.False(t, cache.Has(ctx, "stale"))
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(100)
	ctx := context.Background()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			key := fmt.Sprintf("key-%d", n)
			entry := &CacheEntry{Data: []byte{byte(n)}, ExpiresAt: time.Now().Add(time.Hour)}

			_ = cache.Set(ctx, key, entry)
			_, _ = cache.Get(ctx, key)
			_ = cache.Has(ctx, key)
		}(i)
	}

	wg.Wait()

	for i := 0; i < 10; i++ {
		assert.True(t, cache.Has(ctx, fmt.Sprintf("key-%d", i)))
	}
}

func TestCacheEntry_Expired(t *testing.T) {
	t.Parallel()

	live := &CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}
	assert.False(t, live.Expired())

	stale := &CacheEntry{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, stale.Expired())
}

func TestKVKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"clean key passes through", "catalog/regions", "catalog/regions"},
		{"spaces replaced", "catalog of regions", "catalog_of_regions"},
		{"colon replaced", "catalog:regions", "catalog_regions"},
		{"allowed punctuation kept", "a-b_c.d=e", "a-b_c.d=e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, kvKey(tt.key))
		})
	}
}

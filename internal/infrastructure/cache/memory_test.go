package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmatch/backend/internal/domain"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	cache := NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	t.Run("store and retrieve string", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "k1", "value", time.Minute))
		got, err := cache.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})

	t.Run("structs come back as generic JSON values", func(t *testing.T) {
		jobs := []domain.JobPosting{{ID: "1", Title: "Go Developer", Requirements: []string{"go"}}}
		require.NoError(t, cache.Set(ctx, "jobs:go", jobs, time.Minute))

		got, err := cache.Get(ctx, "jobs:go")
		require.NoError(t, err)

		list, ok := got.([]interface{})
		require.True(t, ok, "got %T", got)
		require.Len(t, list, 1)
		item, ok := list[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Go Developer", item["title"])
		assert.Equal(t, []interface{}{"go"}, item["requirements"])
	})

	t.Run("expired entries miss", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "short", "expires-soon", time.Millisecond))
		time.Sleep(10 * time.Millisecond)

		_, err := cache.Get(ctx, "short")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("unmarshalable values are rejected", func(t *testing.T) {
		err := cache.Set(ctx, "bad", make(chan int), time.Minute)
		assert.Error(t, err)
	})
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Delete(ctx, "key"))

	_, err := cache.Get(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	assert.NoError(t, cache.Delete(ctx, "never-set"))
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "live", "v", time.Minute))
	require.NoError(t, cache.Set(ctx, "stale", "v", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	tests := []struct {
		key  string
		want bool
	}{
		{"live", true},
		{"stale", false},
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cache.Exists(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", 1, time.Minute))
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "b")

	assert.Equal(t, Stats{Entries: 1, Hits: 2, Misses: 1}, cache.Stats())
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "old", "v", time.Millisecond))
	require.NoError(t, cache.Set(ctx, "new", "v", time.Hour))

	removed := cache.removeExpired(time.Now().Add(time.Second))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, cache.Size())
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key-%d", i), i, time.Minute))
	}
	assert.Equal(t, 5, cache.Size())

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestMemoryCache_Close(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)
	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%10)
			_ = cache.Set(ctx, key, i, time.Minute)
			_, _ = cache.Get(ctx, key)
			_, _ = cache.Exists(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Size())
}

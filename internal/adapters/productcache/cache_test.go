package productcache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/adapters/memory"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestCache creates a miniredis-backed cache over the in-memory repository.
func setupTestCache(t *testing.T) (*Repository, *memory.Repository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	inner := memory.NewRepository()
	return NewRepository(inner, client), inner, mr
}

func TestFindByID_CacheHit(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	ctx := context.Background()

	// The entry exists only in Redis, so a hit never touches the inner store.
	cached := &domain.Product{ID: 7, Name: "Pouf", Price: 4990, Category: "decor", Available: true}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	mr.Set(cacheKey(7), string(data))

	found, err := cache.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, cached, found)
}

func TestFindByID_MissPopulatesCache(t *testing.T) {
	cache, inner, mr := setupTestCache(t)
	ctx := context.Background()

	saved, err := inner.Save(ctx, &domain.Product{Name: "Pouf", Price: 4990, Category: "decor", Available: true})
	require.NoError(t, err)

	found, err := cache.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, found)

	require.True(t, mr.Exists(cacheKey(saved.ID)))
	stored, err := mr.Get(cacheKey(saved.ID))
	require.NoError(t, err)

	var roundTripped domain.Product
	require.NoError(t, json.Unmarshal([]byte(stored), &roundTripped))
	assert.Equal(t, *saved, roundTripped)
}

func TestFindByID_AbsentNotCached(t *testing.T) {
	cache, _, mr := setupTestCache(t)

	_, err := cache.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.False(t, mr.Exists(cacheKey(99)))
}

func TestFindByID_CorruptEntryFallsThrough(t *testing.T) {
	cache, inner, mr := setupTestCache(t)
	ctx := context.Background()

	saved, err := inner.Save(ctx, &domain.Product{Name: "Pouf", Price: 4990, Category: "decor", Available: true})
	require.NoError(t, err)
	mr.Set(cacheKey(saved.ID), "{not json")

	found, err := cache.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, found)
}

func TestSave_InvalidatesEntry(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	ctx := context.Background()

	created, err := cache.Save(ctx, &domain.Product{Name: "Pouf", Price: 4990, Category: "decor", Available: true})
	require.NoError(t, err)

	// Warm the cache, then replace the product.
	_, err = cache.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey(created.ID)))

	_, err = cache.Save(ctx, created.WithID(created.ID))
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKey(created.ID)))
}

func TestDeleteByID_InvalidatesEntry(t *testing.T) {
	cache, _, mr := setupTestCache(t)
	ctx := context.Background()

	created, err := cache.Save(ctx, &domain.Product{Name: "Pouf", Price: 4990, Category: "decor", Available: true})
	require.NoError(t, err)

	_, err = cache.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey(created.ID)))

	require.NoError(t, cache.DeleteByID(ctx, created.ID))
	assert.False(t, mr.Exists(cacheKey(created.ID)))
}

func TestRedisDown_FallsBackToInner(t *testing.T) {
	cache, inner, mr := setupTestCache(t)
	ctx := context.Background()

	saved, err := inner.Save(ctx, &domain.Product{Name: "Pouf", Price: 4990, Category: "decor", Available: true})
	require.NoError(t, err)

	mr.Close()

	found, err := cache.FindByID(ctx, saved.ID)
	require.NoError(t, err, "cache failures must not fail reads")
	assert.Equal(t, saved, found)
}

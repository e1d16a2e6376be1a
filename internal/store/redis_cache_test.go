package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/url-shortener/internal/apperr"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/serroba/url-shortener/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingStore counts FindByCode calls that reach the wrapped store.
// afterDelete runs once the wrapped delete has succeeded.
type countingStore struct {
	*store.MemoryURLStore
	findByCodeCalls int
	deleteErr       error
	afterDelete     func()
}

func (c *countingStore) FindByCode(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	c.findByCodeCalls++

	return c.MemoryURLStore.FindByCode(ctx, code)
}

func (c *countingStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if c.deleteErr != nil {
		return false, c.deleteErr
	}

	deleted, err := c.MemoryURLStore.DeleteByID(ctx, id)
	if err == nil && c.afterDelete != nil {
		c.afterDelete()
	}

	return deleted, err
}

func setupCache(t *testing.T) (*store.RedisCacheRepository, *countingStore, *miniredis.Miniredis) {
	t.Helper()

	return setupCacheWithLogger(t, zap.NewNop())
}

func setupCacheWithLogger(
	t *testing.T, logger *zap.Logger,
) (*store.RedisCacheRepository, *countingStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingStore{MemoryURLStore: store.NewMemoryURLStore()}

	return store.NewRedisCacheRepository(inner, client, time.Hour, logger), inner, mr
}

func TestRedisCacheRepository_FindByCode(t *testing.T) {
	t.Run("serves repeated lookups from cache", func(t *testing.T) {
		cache, inner, _ := setupCache(t)
		created, err := inner.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		first, err := cache.FindByCode(context.Background(), created.Code)
		require.NoError(t, err)

		second, err := cache.FindByCode(context.Background(), created.Code)
		require.NoError(t, err)

		assert.Equal(t, 1, inner.findByCodeCalls)
		assert.Equal(t, created, first)
		assert.Equal(t, created, second)
	})

	t.Run("insert writes through", func(t *testing.T) {
		cache, inner, mr := setupCache(t)

		created, err := cache.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)
		assert.True(t, mr.Exists("url:code:"+string(created.Code)))

		got, err := cache.FindByCode(context.Background(), created.Code)
		require.NoError(t, err)
		assert.Equal(t, created, got)
		assert.Zero(t, inner.findByCodeCalls)
	})

	t.Run("applies ttl", func(t *testing.T) {
		cache, _, mr := setupCache(t)

		created, err := cache.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		assert.Equal(t, time.Hour, mr.TTL("url:code:"+string(created.Code)))
	})

	t.Run("caches resolve misses for the short fill ttl", func(t *testing.T) {
		cache, inner, mr := setupCache(t)
		created, err := inner.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		_, err = cache.FindByCode(context.Background(), created.Code)
		require.NoError(t, err)

		assert.Equal(t, store.MaxFillTTL, mr.TTL("url:code:"+string(created.Code)))
	})

	t.Run("passes through not found", func(t *testing.T) {
		cache, _, _ := setupCache(t)

		_, err := cache.FindByCode(context.Background(), "zzzzzz")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("falls back to store when redis is down", func(t *testing.T) {
		cache, inner, mr := setupCache(t)
		created, err := inner.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		mr.Close()

		got, err := cache.FindByCode(context.Background(), created.Code)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})
}

func TestRedisCacheRepository_DeleteByID(t *testing.T) {
	t.Run("evicts cached entry", func(t *testing.T) {
		cache, _, mr := setupCache(t)
		created, err := cache.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		deleted, err := cache.DeleteByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.False(t, mr.Exists("url:code:"+string(created.Code)))

		_, err = cache.FindByCode(context.Background(), created.Code)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("reports false for unknown id", func(t *testing.T) {
		cache, _, _ := setupCache(t)

		deleted, err := cache.DeleteByID(context.Background(), 7)

		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("keeps row when store delete fails", func(t *testing.T) {
		cache, inner, _ := setupCache(t)
		created, err := cache.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		inner.deleteErr = errors.New("db down")

		_, err = cache.DeleteByID(context.Background(), created.ID)
		require.Error(t, err)

		got, err := cache.FindByCode(context.Background(), created.Code)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("refuses delete when eviction fails", func(t *testing.T) {
		cache, inner, mr := setupCache(t)
		created, err := cache.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		mr.SetError("ERR redis unavailable")

		deleted, err := cache.DeleteByID(context.Background(), created.ID)
		require.Error(t, err)
		assert.False(t, deleted)

		mr.SetError("")

		stillThere, err := inner.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, stillThere)

		deleted, err = cache.DeleteByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = cache.FindByCode(context.Background(), created.Code)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("evicts entry cached during the delete", func(t *testing.T) {
		cache, inner, mr := setupCache(t)
		created, err := cache.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		key := "url:code:" + string(created.Code)
		inner.afterDelete = func() {
			mr.HSet(key, "id", "1", "long_url", created.LongURL, "short_code", string(created.Code),
				"owner_id", "1", "created_at", "0")
		}

		deleted, err := cache.DeleteByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.False(t, mr.Exists(key))

		_, err = cache.FindByCode(context.Background(), created.Code)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("logs failed eviction after delete", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		cache, inner, mr := setupCacheWithLogger(t, zap.New(core))
		created, err := cache.Insert(context.Background(), newMapping("https://example.com"))
		require.NoError(t, err)

		inner.afterDelete = func() { mr.SetError("ERR redis unavailable") }

		deleted, err := cache.DeleteByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		entries := logs.FilterMessage("failed to evict cached code after delete").All()
		require.Len(t, entries, 1)
		assert.Equal(t, string(created.Code), entries[0].ContextMap()["code"])
	})
}

func TestRedisCacheRepository_PassThrough(t *testing.T) {
	cache, _, _ := setupCache(t)
	created, err := cache.Insert(context.Background(), newMapping("https://example.com"))
	require.NoError(t, err)

	byLong, err := cache.FindByLongURL(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, created, byLong)

	byID, err := cache.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	all, err := cache.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

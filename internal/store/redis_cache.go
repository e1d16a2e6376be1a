package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/url-shortener/internal/apperr"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

// MaxFillTTL caps the lifetime of entries populated by a resolve miss. Such an
// entry may have been read just before a concurrent delete, so it must not
// outlive the delete by more than this.
const MaxFillTTL = 30 * time.Second

// RedisCacheRepository wraps a shortener.Repository with a Redis read-through
// cache on the resolve path. Read failures fall back to the wrapped store.
type RedisCacheRepository struct {
	store   shortener.Repository
	client  *redis.Client
	logger  *zap.Logger
	prefix  string
	ttl     time.Duration
	fillTTL time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
// Inserted mappings are cached for ttl; resolve-populated entries for at most
// MaxFillTTL.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger,
) *RedisCacheRepository {
	fillTTL := MaxFillTTL
	if ttl > 0 && ttl < fillTTL {
		fillTTL = ttl
	}

	return &RedisCacheRepository{
		store:   store,
		client:  client,
		logger:  logger,
		prefix:  "url:code:",
		ttl:     ttl,
		fillTTL: fillTTL,
	}
}

func (r *RedisCacheRepository) FindByLongURL(ctx context.Context, longURL string) (*shortener.Mapping, error) {
	return r.store.FindByLongURL(ctx, longURL)
}

// FindByCode checks the cache first and populates it on a miss.
func (r *RedisCacheRepository) FindByCode(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	if m, err := r.getFromCache(ctx, code); err == nil {
		return m, nil
	}

	m, err := r.store.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheMapping(ctx, m, r.fillTTL)

	return m, nil
}

func (r *RedisCacheRepository) FindByID(ctx context.Context, id int64) (*shortener.Mapping, error) {
	return r.store.FindByID(ctx, id)
}

// Insert stores the mapping and writes it through to the cache.
func (r *RedisCacheRepository) Insert(ctx context.Context, m *shortener.Mapping) (*shortener.Mapping, error) {
	created, err := r.store.Insert(ctx, m)
	if err != nil {
		return nil, err
	}

	r.cacheMapping(ctx, created, r.ttl)

	return created, nil
}

func (r *RedisCacheRepository) List(ctx context.Context) ([]*shortener.Mapping, error) {
	return r.store.List(ctx)
}

// DeleteByID removes the mapping and evicts its cache entry. The entry is
// evicted before the row is deleted, and the delete is refused when that
// eviction fails, so a deleted mapping is never served from a write-through
// entry. A second eviction afterwards drops anything a concurrent resolve
// cached in between.
func (r *RedisCacheRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	existing, err := r.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	key := r.key(existing.Code)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("evict cached code %s: %w", existing.Code, err)
	}

	deleted, err := r.store.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("failed to evict cached code after delete",
			zap.String("code", string(existing.Code)),
			zap.Duration("staleFor", r.fillTTL),
			zap.Error(err),
		)
	}

	return deleted, nil
}

func (r *RedisCacheRepository) key(code shortener.Code) string {
	return r.prefix + string(code)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	result, err := r.client.HGetAll(ctx, r.key(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, apperr.ErrNotFound
	}

	id, err := strconv.ParseInt(result["id"], 10, 64)
	if err != nil {
		return nil, err
	}

	ownerID, err := strconv.ParseInt(result["owner_id"], 10, 64)
	if err != nil {
		return nil, err
	}

	nanos, err := strconv.ParseInt(result["created_at"], 10, 64)
	if err != nil {
		return nil, err
	}

	return &shortener.Mapping{
		ID:        id,
		LongURL:   result["long_url"],
		Code:      shortener.Code(result["short_code"]),
		OwnerID:   ownerID,
		CreatedAt: time.Unix(0, nanos).UTC(),
	}, nil
}

func (r *RedisCacheRepository) cacheMapping(ctx context.Context, m *shortener.Mapping, ttl time.Duration) {
	pipe := r.client.Pipeline()
	key := r.key(m.Code)

	pipe.HSet(ctx, key, map[string]interface{}{
		"id":         m.ID,
		"long_url":   m.LongURL,
		"short_code": string(m.Code),
		"owner_id":   m.OwnerID,
		"created_at": m.CreatedAt.UnixNano(),
	})

	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)

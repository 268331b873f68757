package product

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const cacheScope = "product"

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(scope, id string) string
}

// Cache keeps serialized product DTOs in redis. All methods are safe on a
// nil receiver so the service can run without a cache.
type Cache struct {
	store cacheStore
	ttl   time.Duration
}

// NewCache wraps a redis client with the configured TTL.
func NewCache(store cacheStore, ttl time.Duration) *Cache {
	if store == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{store: store, ttl: ttl}
}

// GetProduct returns a cached DTO, or nil on miss or decode failure.
func (c *Cache) GetProduct(ctx context.Context, id uuid.UUID) *ProductDTO {
	if c == nil || c.store == nil {
		return nil
	}
	raw, err := c.store.Get(ctx, c.store.CacheKey(cacheScope, id.String()))
	if err != nil {
		return nil
	}
	var dto ProductDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return nil
	}
	return &dto
}

// SetProduct caches a DTO. Failures are swallowed, the cache is best effort.
func (c *Cache) SetProduct(ctx context.Context, dto *ProductDTO) {
	if c == nil || c.store == nil || dto == nil {
		return
	}
	payload, err := json.Marshal(dto)
	if err != nil {
		return
	}
	_ = c.store.Set(ctx, c.store.CacheKey(cacheScope, dto.ID.String()), string(payload), c.ttl)
}

// Invalidate drops the cached entry for the product.
func (c *Cache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.store == nil {
		return
	}
	_ = c.store.Del(ctx, c.store.CacheKey(cacheScope, id.String()))
}

package product

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/redis"
)

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeCacheStore()
	cache := NewCache(store, time.Minute)

	id := uuid.New()
	if got := cache.GetProduct(ctx, id); got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}

	dto := &ProductDTO{ID: id, Name: "Cached Lamp", Price: 12.5, SKU: "LAMP-C"}
	cache.SetProduct(ctx, dto)

	got := cache.GetProduct(ctx, id)
	if got == nil {
		t.Fatal("expected hit after set")
	}
	if got.Name != dto.Name || got.Price != dto.Price || got.SKU != dto.SKU {
		t.Fatalf("cached payload mismatch: %+v", got)
	}

	cache.Invalidate(ctx, id)
	if got := cache.GetProduct(ctx, id); got != nil {
		t.Fatalf("expected miss after invalidate, got %+v", got)
	}
}

func TestCacheNilReceiverIsSafe(t *testing.T) {
	ctx := context.Background()
	var cache *Cache

	cache.SetProduct(ctx, &ProductDTO{ID: uuid.New()})
	cache.Invalidate(ctx, uuid.New())
	if got := cache.GetProduct(ctx, uuid.New()); got != nil {
		t.Fatalf("nil cache must always miss, got %+v", got)
	}
}

type fakeCacheStore struct {
	data map[string]string
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{data: map[string]string{}}
}

func (f *fakeCacheStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeCacheStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeCacheStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeCacheStore) CacheKey(scope, id string) string {
	return "sm:cache:" + scope + ":" + id
}

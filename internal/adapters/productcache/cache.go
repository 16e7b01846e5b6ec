// Package productcache decorates a ProductRepository with a Redis
// read-through cache for by-id lookups.
package productcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Repository wraps an inner ProductRepository, serving FindByID from Redis
// when possible. Writes and deletes invalidate the cached entry. Cache
// failures fall back to the inner repository and are only logged.
type Repository struct {
	inner   domain.ProductRepository
	client  *redis.Client
	baseTTL time.Duration
}

// NewRepository creates the caching decorator.
func NewRepository(inner domain.ProductRepository, client *redis.Client) *Repository {
	return &Repository{
		inner:   inner,
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func (r *Repository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.inner.FindAll(ctx)
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	key := cacheKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var product domain.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		log.Printf("Dropping unreadable cache entry %s", key)
		r.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Redis get failed for %s: %v", key, err)
	}

	product, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(ctx, product)
	return product, nil
}

func (r *Repository) FindByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return r.inner.FindByCategory(ctx, category)
}

func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	saved, err := r.inner.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	if err := r.client.Del(ctx, cacheKey(saved.ID)).Err(); err != nil {
		log.Printf("Redis invalidation failed for product %d: %v", saved.ID, err)
	}
	return saved, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.inner.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Printf("Redis invalidation failed for product %d: %v", id, err)
	}
	return nil
}

func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.inner.ExistsByID(ctx, id)
}

func (r *Repository) set(ctx context.Context, product *domain.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		log.Printf("Marshal product %d for cache failed: %v", product.ID, err)
		return
	}

	// Jitter spreads out expirations of entries cached together.
	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := r.client.Set(ctx, cacheKey(product.ID), data, ttl).Err(); err != nil {
		log.Printf("Redis set failed for product %d: %v", product.ID, err)
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

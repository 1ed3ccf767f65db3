package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

// DefaultTTL bounds how long a read racing an invalidation can serve a stale product.
const DefaultTTL = time.Minute

type ProductCache interface {
	Get(ctx context.Context, id uint) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Invalidate(ctx context.Context, ids ...uint) error
}

type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl}
}

func productKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *RedisProductCache) Get(ctx context.Context, id uint) (*models.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *RedisProductCache) Set(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err()
}

func (c *RedisProductCache) Invalidate(ctx context.Context, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	return c.client.Del(ctx, keys...).Err()
}

// NopProductCache always misses.
type NopProductCache struct{}

func (NopProductCache) Get(ctx context.Context, id uint) (*models.Product, error) {
	return nil, ErrMiss
}

func (NopProductCache) Set(ctx context.Context, product *models.Product) error { return nil }

func (NopProductCache) Invalidate(ctx context.Context, ids ...uint) error { return nil }

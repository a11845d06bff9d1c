package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/models"
)

// ProductCache is a read-through cache for catalog rows. A nil *ProductCache
// is valid and disables caching entirely.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache wraps a redis client. TTL bounds how stale a product view
// can get between explicit invalidations.
func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (c *ProductCache) key(id string) string {
	return "product:" + id
}

// Get returns the cached product or nil on a miss. Cache errors degrade to a
// miss; the database stays the source of truth.
func (c *ProductCache) Get(ctx context.Context, id string) *models.Product {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		c.logger.Warn("Product cache read failed", zap.String("product_id", id), zap.Error(err))
		return nil
	}

	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		c.logger.Warn("Product cache entry corrupt", zap.String("product_id", id), zap.Error(err))
		return nil
	}
	return &product
}

// Set stores a product, best effort.
func (c *ProductCache) Set(ctx context.Context, product *models.Product) {
	if c == nil {
		return
	}

	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(product.ID.String()), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Product cache write failed", zap.String("product_id", product.ID.String()), zap.Error(err))
	}
}

// Invalidate drops a product entry after an update or deactivation.
func (c *ProductCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn("Product cache invalidation failed", zap.String("product_id", id), zap.Error(err))
	}
}

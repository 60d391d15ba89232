package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-api/internal/logging"
)

const productTTL = 5 * time.Minute

// ErrMiss is returned when a key is absent or unreadable; callers fall
// through to the database.
var ErrMiss = errors.New("cache miss")

// ProductCache is a read-through TTL cache for product detail responses.
// A cache failure is never an API failure: misses and redis errors both
// surface as ErrMiss.
type ProductCache struct {
	rdb *redis.Client
}

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func NewProductCache(rdb *redis.Client) *ProductCache {
	return &ProductCache{rdb: rdb}
}

func productKey(id string) string {
	return "product:" + id
}

func (c *ProductCache) Get(ctx context.Context, id string, dest any) error {
	raw, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn(ctx, "product cache read failed", "error", err)
		}
		return ErrMiss
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrMiss
	}
	return nil
}

func (c *ProductCache) Set(ctx context.Context, id string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, productKey(id), raw, productTTL).Err(); err != nil {
		logging.Warn(ctx, "product cache write failed", "error", err)
	}
}

func (c *ProductCache) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, productKey(id)).Err(); err != nil {
		logging.Warn(ctx, "product cache invalidation failed", "error", err)
	}
}

package adapter

import (
	"context"
	"errors"
	"time"

	"aptilab/internal/domain"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	rdb redis.Cmdable
}

// NewRedisCacheAdapter wraps an already connected client.
func NewRedisCacheAdapter(rdb redis.Cmdable) domain.Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", domain.ErrCacheMiss
	case err != nil:
		return "", err
	}
	return val, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

type noopCache struct{}

// NewNoopCache stands in when no Redis address is configured.
func NewNoopCache() domain.Cache { return noopCache{} }

func (noopCache) Get(context.Context, string) (string, error) {
	return "", domain.ErrCacheMiss
}

func (noopCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}

func (noopCache) Delete(context.Context, string) error {
	return nil
}

func (noopCache) Ping(context.Context) error {
	return nil
}

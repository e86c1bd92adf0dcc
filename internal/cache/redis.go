// Package cache builds the Redis client and names the keys stored in it.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aptilab/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrRedisDisabled means the config carries no Redis address.
var ErrRedisDisabled = errors.New("redis disabled: no address configured")

const dialCheckTimeout = 5 * time.Second

// NewRedisClient returns a client only after the server answered PING.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrRedisDisabled
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Address, Password: cfg.Password, DB: cfg.DB})

	ctx, cancel := context.WithTimeout(context.Background(), dialCheckTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Address, err)
	}
	return rdb, nil
}

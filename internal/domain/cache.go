package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is what every Cache returns from Get for an absent key.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a string key/value store with expiry. The application runs
// without Redis by falling back to an implementation that always misses.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// Set with ttl 0 keeps the value until it is deleted.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete of an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

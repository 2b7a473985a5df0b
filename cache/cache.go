// Package cache provides the key/value store behind the feed page
// cache: byte values with a TTL and explicit invalidation.
package cache

import (
	"context"
	"errors"
	"time"
)

// FeedKey is the fixed key the global feed page is cached under.
// It is deliberately not per-user and not per-query: every request
// inside the TTL window gets the same bytes.
const FeedKey = "index_page"

var ErrMiss = errors.New("cache: key not found")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

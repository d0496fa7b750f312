package query

import (
	"context"
	"errors"
	"time"
)

// Store is the byte-level cache behind the query layer. Consumers define
// this interface, not the backends.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix drops every key under the given prefix. Used for
	// tag-level invalidation.
	DeletePrefix(ctx context.Context, prefix string) error
}

var ErrCacheMiss = errors.New("cache miss")

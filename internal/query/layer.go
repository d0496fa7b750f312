// Package query is the read layer between the UI surfaces and the
// marketplace API: cache-aside reads keyed by resource tag plus params,
// deduplicated with singleflight, invalidated tag-wide after writes.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/singleflight"
)

// Resource tags every cached read and names what a mutation invalidates.
type Resource string

const (
	ResourceProduct Resource = "PRODUCT"
	ResourceShop    Resource = "SHOP"
	ResourceReview  Resource = "REVIEW"
	ResourceOrder   Resource = "ORDER"
	ResourcePayment Resource = "PAYMENT"
	ResourceCoupon  Resource = "COUPON"
	ResourceUser    Resource = "USER"
	ResourceCart    Resource = "CART"
)

// Key builds the cache key for a resource read with the given params string.
func Key(res Resource, params string) string {
	return fmt.Sprintf("%s:%s", res, params)
}

type Layer struct {
	store   Store
	baseTTL time.Duration
	log     *slog.Logger
	sfg     singleflight.Group // Prevents cache stampede
}

func NewLayer(store Store, ttl time.Duration, log *slog.Logger) *Layer {
	return &Layer{
		store:   store,
		baseTTL: ttl,
		log:     log,
	}
}

// Fetch is the cache-aside read path. Concurrent identical fetches share one
// network call; hits skip fn entirely; misses run fn and populate the cache
// with a jittered TTL. Cache failures are logged and degrade to a plain
// fetch, they never fail the read.
func Fetch[T any](ctx context.Context, l *Layer, res Resource, params string, fn func(context.Context) (T, error)) (T, error) {
	key := Key(res, params)

	v, err, _ := l.sfg.Do(key, func() (interface{}, error) {
		data, errGet := l.store.Get(ctx, key)
		if errGet == nil {
			var cached T
			if errUnmarshal := json.Unmarshal(data, &cached); errUnmarshal == nil {
				return cached, nil
			}
			// Corrupt entry, fall through to the network.
			l.log.Warn("dropping undecodable cache entry", "key", key)
		} else if !isMiss(errGet) {
			l.log.Warn("cache get failed", "key", key, "error", errGet)
		}

		fresh, errFetch := fn(ctx)
		if errFetch != nil {
			return nil, errFetch
		}

		if data, errMarshal := json.Marshal(fresh); errMarshal == nil {
			go func() {
				ctxSet, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if errSet := l.store.Set(ctxSet, key, data, l.jitteredTTL()); errSet != nil {
					l.log.Warn("cache set failed", "key", key, "error", errSet)
				}
			}()
		}

		return fresh, nil
	})

	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Mutate runs a write against the API and, on success, invalidates the given
// resource tags so dependent reads refetch.
func Mutate[T any](ctx context.Context, l *Layer, fn func(context.Context) (T, error), tags ...Resource) (T, error) {
	out, err := fn(ctx)
	if err != nil {
		return out, err
	}
	l.Invalidate(ctx, tags...)
	return out, nil
}

// Invalidate drops every cached read under the given tags. Backend errors
// are logged, not returned: a stale entry expires on its own TTL anyway.
func (l *Layer) Invalidate(ctx context.Context, tags ...Resource) {
	for _, tag := range tags {
		if err := l.store.DeletePrefix(ctx, string(tag)+":"); err != nil {
			l.log.Warn("cache invalidate failed", "tag", tag, "error", err)
		}
	}
}

func (l *Layer) jitteredTTL() time.Duration {
	if l.baseTTL <= 0 {
		return time.Minute
	}
	jitter := time.Duration(rand.Int63n(int64(l.baseTTL)/5 + 1))
	return l.baseTTL + jitter
}

func isMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

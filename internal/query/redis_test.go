package query

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisGet_Success(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("PRODUCT:id=A", `{"id":"A"}`))

	data, err := store.Get(ctx, "PRODUCT:id=A")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"A"}`, string(data))
}

func TestRedisGet_Miss(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background(), "PRODUCT:id=nope")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisSet_AppliesTTL(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "SHOP:id=S1", []byte(`{}`), time.Minute))

	assert.True(t, mr.Exists("SHOP:id=S1"))
	assert.Greater(t, mr.TTL("SHOP:id=S1"), time.Duration(0))

	// Past the TTL the entry is gone.
	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "SHOP:id=S1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisDeletePrefix(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("ORDER:page=1", `1`))
	require.NoError(t, mr.Set("ORDER:page=2", `2`))
	require.NoError(t, mr.Set("USER:me", `3`))

	require.NoError(t, store.DeletePrefix(ctx, "ORDER:"))

	assert.False(t, mr.Exists("ORDER:page=1"))
	assert.False(t, mr.Exists("ORDER:page=2"))
	assert.True(t, mr.Exists("USER:me"))
}

func TestRedisDeletePrefix_NoMatches(t *testing.T) {
	store, _ := setupTestRedis(t)

	require.NoError(t, store.DeletePrefix(context.Background(), "PAYMENT:"))
}

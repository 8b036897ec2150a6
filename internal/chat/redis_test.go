package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRedis starts an in-process Redis for the test.
func testRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func unreachableRedis(t *testing.T) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisCache(t *testing.T) {
	mr, rdb := testRedis(t)
	ctx := context.Background()
	c := NewRedisCache(rdb, nil)

	_, ok := c.Get(ctx, "what skills do you have")
	assert.False(t, ok)

	c.Set(ctx, "what skills do you have", CachedReply{Text: "Go", HTML: "<strong>Go</strong>"})
	got, ok := c.Get(ctx, "what skills do you have")
	require.True(t, ok)
	assert.Equal(t, "Go", got.Text)
	assert.Equal(t, "<strong>Go</strong>", got.HTML)
	assert.True(t, mr.Exists(redisCacheKey))

	mr.HSet(redisCacheKey, "broken", "not json")
	_, ok = c.Get(ctx, "broken")
	assert.False(t, ok)
}

func TestRedisCache_SharedAcrossInstances(t *testing.T) {
	_, rdb := testRedis(t)
	ctx := context.Background()

	NewRedisCache(rdb, nil).Set(ctx, "projects", CachedReply{Text: "A cost database"})
	got, ok := NewRedisCache(rdb, nil).Get(ctx, "projects")
	require.True(t, ok)
	assert.Equal(t, "A cost database", got.Text)
}

func TestRedisRateWindow(t *testing.T) {
	mr, rdb := testRedis(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	w := NewRedisRateWindow(rdb, 2, time.Minute, nil)
	w.now = func() time.Time { return now }

	w.Record(ctx)
	assert.False(t, w.Limited(ctx))
	assert.Equal(t, 2*time.Minute, mr.TTL(redisRateKey))

	now = now.Add(30 * time.Second)
	w.Record(ctx)
	assert.True(t, w.Limited(ctx))

	// the first call falls out of the window, the second stays in it
	now = now.Add(31 * time.Second)
	assert.False(t, w.Limited(ctx))
	n, err := rdb.ZCard(ctx, redisRateKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	now = now.Add(time.Minute)
	assert.False(t, w.Limited(ctx))
	n, err = rdb.ZCard(ctx, redisRateKey).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisRateWindow_SharedAcrossInstances(t *testing.T) {
	_, rdb := testRedis(t)
	ctx := context.Background()

	a := NewRedisRateWindow(rdb, 2, time.Minute, nil)
	b := NewRedisRateWindow(rdb, 2, time.Minute, nil)

	a.Record(ctx)
	b.Record(ctx)
	assert.True(t, a.Limited(ctx))
	assert.True(t, b.Limited(ctx))
}

func TestRedisBackedState_FailsOpen(t *testing.T) {
	rdb := unreachableRedis(t)
	ctx := context.Background()

	c := NewRedisCache(rdb, nil)
	c.Set(ctx, "k", CachedReply{Text: "x"})
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	w := NewRedisRateWindow(rdb, 1, time.Minute, nil)
	w.Record(ctx)
	assert.False(t, w.Limited(ctx))
}

package chat

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisCacheKey = "chat:replies"

// RedisCache keeps replies in a single Redis hash so that every replica
// serves the same cached answers. Entries never expire. Redis failures are
// treated as cache misses.
type RedisCache struct {
	rdb    *redis.Client
	key    string
	logger *zap.Logger
}

func NewRedisCache(rdb *redis.Client, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{rdb: rdb, key: redisCacheKey, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (CachedReply, bool) {
	raw, err := c.rdb.HGet(ctx, c.key, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("reply cache read failed", zap.String("key", key), zap.Error(err))
		}
		return CachedReply{}, false
	}

	var reply CachedReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		c.logger.Warn("reply cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return CachedReply{}, false
	}
	return reply, true
}

func (c *RedisCache) Set(ctx context.Context, key string, reply CachedReply) {
	data, err := json.Marshal(reply)
	if err != nil {
		return
	}
	if err := c.rdb.HSet(ctx, c.key, key, data).Err(); err != nil {
		c.logger.Warn("reply cache write failed", zap.String("key", key), zap.Error(err))
	}
}

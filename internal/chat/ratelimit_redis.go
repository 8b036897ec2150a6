package chat

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisRateKey = "chat:rate_window"

// RedisRateWindow is the rolling window kept in a Redis sorted set scored by
// Unix milliseconds, shared by every replica. It fails open: if Redis is
// unreachable the assistant keeps answering.
type RedisRateWindow struct {
	rdb    *redis.Client
	key    string
	limit  int
	window time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewRedisRateWindow(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RedisRateWindow {
	if limit <= 0 {
		limit = DefaultRPMLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRateWindow{
		rdb:    rdb,
		key:    redisRateKey,
		limit:  limit,
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

func (w *RedisRateWindow) Limited(ctx context.Context) bool {
	cutoff := w.now().Add(-w.window).UnixMilli()

	pipe := w.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, w.key, "-inf", strconv.FormatInt(cutoff, 10))
	count := pipe.ZCard(ctx, w.key)
	if _, err := pipe.Exec(ctx); err != nil {
		w.logger.Warn("rate window check failed", zap.Error(err))
		return false
	}
	return count.Val() >= int64(w.limit)
}

func (w *RedisRateWindow) Record(ctx context.Context) {
	now := w.now()

	pipe := w.rdb.TxPipeline()
	pipe.ZAdd(ctx, w.key, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
	pipe.Expire(ctx, w.key, 2*w.window)
	if _, err := pipe.Exec(ctx); err != nil {
		w.logger.Warn("rate window record failed", zap.Error(err))
	}
}

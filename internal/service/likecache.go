package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/pkg/logger"
)

// LikeCache is a read-through redis cache for per-tweet like counts. A nil
// *LikeCache is a valid no-op, so the relationship service does not care
// whether redis is configured.
type LikeCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLikeCache(rdb *redis.Client, ttl time.Duration) *LikeCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &LikeCache{rdb: rdb, ttl: ttl}
}

func likeKey(tweetID int64) string { return fmt.Sprintf("tweet:likes:%d", tweetID) }

func (c *LikeCache) Get(ctx context.Context, tweetID int64) (int64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	n, err := c.rdb.Get(ctx, likeKey(tweetID)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *LikeCache) Set(ctx context.Context, tweetID, count int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, likeKey(tweetID), count, c.ttl).Err(); err != nil {
		logger.Warn("like cache set failed", zap.Int64("tweet_id", tweetID), zap.Error(err))
	}
}

// Invalidate drops the cached count; callers invoke it after every like,
// unlike and tweet delete so a stale count never outlives a write.
func (c *LikeCache) Invalidate(ctx context.Context, tweetID int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, likeKey(tweetID)).Err(); err != nil {
		logger.Warn("like cache invalidate failed", zap.Int64("tweet_id", tweetID), zap.Error(err))
	}
}

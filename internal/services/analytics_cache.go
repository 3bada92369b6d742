package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
)

// AnalyticsCache keeps computed analytics payloads in redis, keyed per user.
// A nil cache or nil client degrades to always-miss, so the service runs
// without redis in tests and small deployments.
type AnalyticsCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewAnalyticsCache(rdb *redis.Client, ttl time.Duration, baseLog *logger.Logger) *AnalyticsCache {
	cacheLog := baseLog.With("component", "AnalyticsCache")
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnalyticsCache{rdb: rdb, ttl: ttl, log: cacheLog}
}

func (c *AnalyticsCache) key(userID uuid.UUID) string {
	return "gradepoint:analytics:" + userID.String()
}

func (c *AnalyticsCache) Get(ctx context.Context, userID uuid.UUID) (*AnalyticsData, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Analytics cache read failed", "user_id", userID.String(), "error", err)
		}
		return nil, false
	}
	var data AnalyticsData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.log.Warn("Analytics cache entry corrupt", "user_id", userID.String(), "error", err)
		return nil, false
	}
	return &data, true
}

func (c *AnalyticsCache) Set(ctx context.Context, userID uuid.UUID, data *AnalyticsData) {
	if c == nil || c.rdb == nil || data == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		c.log.Warn("Failed to encode analytics for cache", "user_id", userID.String(), "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.key(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Analytics cache write failed", "user_id", userID.String(), "error", err)
	}
}

// Invalidate drops the user's cached analytics after any record mutation.
func (c *AnalyticsCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(userID)).Err(); err != nil {
		c.log.Warn("Analytics cache invalidation failed", "user_id", userID.String(), "error", err)
	}
}

package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
)

// newRedisClient returns nil when no address is configured; the analytics
// cache treats a nil client as always-miss.
func newRedisClient(cfg Config, log *logger.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("Redis not configured, analytics cache disabled")
		return nil
	}
	log.Info("Connecting to Redis...", "addr", cfg.RedisAddr)
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

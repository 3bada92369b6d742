package app

import (
	"strings"
	"time"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/utils"
)

type Config struct {
	JWTSecretKey      string
	RedisAddr         string
	RedisPassword     string
	AnalyticsCacheTTL time.Duration
	GradeScaleFile    string
	AllowOrigins      []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
	cacheTTLSeconds := utils.GetEnvAsInt("ANALYTICS_CACHE_TTL", 300, log)
	gradeScaleFile := utils.GetEnv("GRADE_SCALE_FILE", "", log)
	allowOrigins := utils.GetEnv("ALLOW_ORIGINS", "", log)

	cfg := Config{
		JWTSecretKey:      jwtSecretKey,
		RedisAddr:         redisAddr,
		RedisPassword:     redisPassword,
		AnalyticsCacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
		GradeScaleFile:    gradeScaleFile,
	}
	if allowOrigins != "" {
		for _, origin := range strings.Split(allowOrigins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, trimmed)
			}
		}
	}
	return cfg
}

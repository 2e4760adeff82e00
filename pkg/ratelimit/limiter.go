// Package ratelimit throttles image generation per caller. It uses a fixed
// window counter in Redis so the limit holds across replicas.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"ai-charstudio-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	// Allow reports whether the caller may run another generation inside the
	// current window.
	Allow(ctx context.Context, userUID string) bool
}

type redisLimiter struct {
	rdb    *redis.Client
	log    logger.ILogger
	limit  int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, log logger.ILogger, limit int, window time.Duration) Limiter {
	return &redisLimiter{rdb: rdb, log: log, limit: limit, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, userUID string) bool {
	key := fmt.Sprintf("ratelimit:generate:%s", userUID)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		// fail open: a Redis outage must not take generation down with it
		l.log.Warn("ratelimit", "redis unavailable, allowing request", map[string]interface{}{
			"user_uid": userUID,
			"error":    err.Error(),
		})
		return true
	}

	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			l.log.Warn("ratelimit", "failed to set window expiry", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return count <= int64(l.limit)
}

// redisratelimit.go implements the rate limiter backend used when
// security.rate_limiting.backend is "redis". Counters live in Redis so the
// limit holds across replicas, unlike the in-memory token bucket.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/volunteerhub/volunteerhub/internal/config"
)

// RedisRateLimiter wraps a redis_rate limiter with a per-route limit.
type RedisRateLimiter struct {
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit
}

// NewRedisRateLimiter connects a limiter to the configured Redis instance.
func NewRedisRateLimiter(redisCfg config.RedisConfig, rateCfg RateLimitConfig) *RedisRateLimiter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	limit := redis_rate.PerMinute(rateCfg.RequestsPerMinute)
	limit.Burst = rateCfg.BurstSize

	return &RedisRateLimiter{
		limiter: redis_rate.NewLimiter(rdb),
		limit:   limit,
	}
}

// RedisRateLimitMiddleware creates a Gin middleware that rate limits requests
// against shared Redis counters. On Redis errors the request is allowed
// through; availability wins over strict limiting.
func RedisRateLimitMiddleware(limiter *RedisRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := getRateLimitKey(c)

		res, err := limiter.limiter.Allow(c.Request.Context(), key, limiter.limit)
		if err != nil {
			slog.Error("redis rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit.Rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if res.Allowed == 0 {
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}

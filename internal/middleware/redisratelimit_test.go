package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub/internal/config"
)

func TestNewRedisRateLimiter_AppliesLimits(t *testing.T) {
	limiter := NewRedisRateLimiter(
		config.RedisConfig{Addr: "localhost:6379"},
		RateLimitConfig{RequestsPerMinute: 30, BurstSize: 5},
	)

	if limiter.limit.Rate != 30 {
		t.Errorf("Rate = %d, want 30", limiter.limit.Rate)
	}
	if limiter.limit.Burst != 5 {
		t.Errorf("Burst = %d, want 5", limiter.limit.Burst)
	}
}

func TestRedisRateLimitMiddleware_FailsOpenWhenRedisUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Point at a port nothing listens on; the limiter must let requests
	// through rather than turning a Redis outage into a full outage.
	limiter := NewRedisRateLimiter(
		config.RedisConfig{Addr: "127.0.0.1:1"},
		RateLimitConfig{RequestsPerMinute: 30, BurstSize: 5},
	)

	router := gin.New()
	router.Use(RedisRateLimitMiddleware(limiter))
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when Redis is unreachable", w.Code)
	}
}

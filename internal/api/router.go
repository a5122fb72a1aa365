// Package api wires together all HTTP routes for the VolunteerHub backend.
//
// Route grouping philosophy:
//   - The organization signup endpoint and the volunteer auth endpoints are
//     public: organizations do not have credentials yet when they apply, and
//     volunteers need to register and log in before they hold a token. Both
//     carry their own rate limits.
//   - The volunteer profile endpoints require a Bearer token.
//   - Everything under /api/v1/admin additionally requires the admin role and
//     is recorded to the audit log.
package api

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/volunteerhub/volunteerhub/internal/api/admin"
	"github.com/volunteerhub/volunteerhub/internal/api/organizations"
	"github.com/volunteerhub/volunteerhub/internal/api/volunteers"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
	"github.com/volunteerhub/volunteerhub/internal/jobs"
	"github.com/volunteerhub/volunteerhub/internal/middleware"
	"github.com/volunteerhub/volunteerhub/internal/notify"
	"github.com/volunteerhub/volunteerhub/internal/services"
)

// BackgroundServices holds references to background jobs and resources that must
// be stopped during graceful shutdown. The caller (cmd/server) is responsible for
// calling Shutdown() when the process receives a termination signal.
type BackgroundServices struct {
	reminderJob  *jobs.PendingRequestReminder
	rateLimiters []*middleware.RateLimiter
}

// Shutdown stops all background goroutines. It should be called after the HTTP
// server has been shut down so that in-flight requests are drained first.
func (bg *BackgroundServices) Shutdown() {
	slog.Info("stopping background services")
	if bg.reminderJob != nil {
		bg.reminderJob.Stop()
	}
	for _, rl := range bg.rateLimiters {
		rl.Stop()
	}
	slog.Info("all background services stopped")
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *sql.DB) (*gin.Engine, *BackgroundServices) {
	router := gin.New()

	// Initialize repositories
	accountRepo := repositories.NewOrganizationAccountRepository(db)
	requestRepo := repositories.NewOrganizationRequestRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	// Wrap *sql.DB with sqlx for the volunteer repository
	sqlxDB := sqlx.NewDb(db, "postgres")
	volunteerRepo := repositories.NewVolunteerRepository(sqlxDB)

	// Notification mailer and domain services
	mailer := notify.NewMailer(&cfg.Notifications)
	signupService := services.NewSignupService(accountRepo, requestRepo, mailer)
	reviewService := services.NewReviewService(db, accountRepo, requestRepo, mailer)

	// Start the pending-request reminder job. It is a no-op when
	// notifications are disabled, so it is always started.
	reminderJob := jobs.NewPendingRequestReminder(requestRepo, mailer, &cfg.Notifications)
	go reminderJob.Start(context.Background())

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(LoggerMiddleware(cfg))
	router.Use(CORSMiddleware(cfg))
	router.Use(middleware.SecurityHeadersMiddleware(middleware.APISecurityHeadersConfig()))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// Readiness check endpoint
	router.GET("/ready", readinessHandler(db))

	// API version
	router.GET("/version", versionHandler())

	// Rate limiters. The in-memory token bucket is the default; the Redis
	// backend shares counters across replicas.
	bg := &BackgroundServices{reminderJob: reminderJob}
	signupLimit := rateLimitFor(cfg, middleware.SignupRateLimitConfig(), bg)
	authLimit := rateLimitFor(cfg, middleware.AuthRateLimitConfig(), bg)
	generalLimit := rateLimitFor(cfg, middleware.DefaultRateLimitConfig(), bg)

	// Handlers
	signupHandlers := organizations.NewSignupHandlers(signupService)
	authHandlers := volunteers.NewAuthHandlers(cfg, sqlxDB)
	profileHandlers := volunteers.NewProfileHandlers(cfg, sqlxDB)
	requestHandlers := admin.NewRequestHandlers(db, reviewService)
	auditHandlers := admin.NewAuditHandlers(db)

	// Public organization signup endpoint
	router.POST("/organization/request", signupLimit, signupHandlers.SubmitHandler())

	// Public volunteer authentication endpoints
	authGroup := router.Group("/auth")
	authGroup.Use(authLimit)
	{
		authGroup.POST("/register", authHandlers.RegisterHandler())
		authGroup.POST("/login", authHandlers.LoginHandler())
	}

	// Authenticated volunteer profile endpoints
	profileGroup := router.Group("/volunteer")
	profileGroup.Use(middleware.AuthMiddleware(volunteerRepo))
	profileGroup.Use(generalLimit)
	profileGroup.Use(middleware.AuditMiddlewareWithConfig(auditRepo, &cfg.Audit))
	{
		profileGroup.GET("/profile", profileHandlers.GetProfileHandler())
		profileGroup.PUT("/profile", profileHandlers.UpdateProfileHandler())
	}

	// Admin review endpoints
	adminGroup := router.Group("/api/v1/admin")
	adminGroup.Use(middleware.AuthMiddleware(volunteerRepo))
	adminGroup.Use(middleware.RequireAdmin())
	adminGroup.Use(generalLimit)
	adminGroup.Use(middleware.AuditMiddlewareWithConfig(auditRepo, &cfg.Audit))
	{
		adminGroup.GET("/requests", requestHandlers.ListRequestsHandler())
		adminGroup.POST("/requests/:id/approve", requestHandlers.ApproveRequestHandler())
		adminGroup.DELETE("/requests/:id", requestHandlers.RejectRequestHandler())
		adminGroup.GET("/audit-logs", auditHandlers.ListAuditLogsHandler())
	}

	return router, bg
}

// rateLimitFor builds the rate-limit middleware for one route class, using the
// configured backend. In-memory limiters are registered with BackgroundServices
// so their cleanup goroutines stop on shutdown.
func rateLimitFor(cfg *config.Config, rateCfg middleware.RateLimitConfig, bg *BackgroundServices) gin.HandlerFunc {
	if cfg.Security.RateLimiting.Backend == "redis" {
		limiter := middleware.NewRedisRateLimiter(cfg.Security.RateLimiting.Redis, rateCfg)
		return middleware.RedisRateLimitMiddleware(limiter)
	}

	limiter := middleware.NewRateLimiter(rateCfg)
	bg.rateLimiters = append(bg.rateLimiters, limiter)
	return middleware.RateLimitMiddleware(limiter)
}

// @Summary      Health check
// @Description  Returns the health status of the service, including database connectivity.
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status: healthy, time: RFC3339 timestamp"
// @Failure      503  {object}  map[string]interface{}  "status: unhealthy, error: database connection failed"
// @Router       /health [get]
// healthCheckHandler returns the health status of the service
func healthCheckHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check database connection
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// @Summary      Readiness check
// @Description  Returns whether the service is ready to accept traffic.
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "ready: true, time: RFC3339 timestamp"
// @Failure      503  {object}  map[string]interface{}  "ready: false, error: database not ready"
// @Router       /ready [get]
// readinessHandler returns the readiness status of the service.
func readinessHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := gin.H{}

		if err := db.Ping(); err != nil {
			checks["database"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready":  false,
				"checks": checks,
				"error":  "database not ready",
			})
			return
		}
		checks["database"] = "healthy"

		c.JSON(http.StatusOK, gin.H{
			"ready":  true,
			"checks": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// @Summary      API version
// @Description  Returns the current API version.
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "version, api_version"
// @Router       /version [get]
// versionHandler returns the API version
func versionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":     "0.1.0",
			"api_version": "v1",
		})
	}
}

// LoggerMiddleware provides structured logging
func LoggerMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		requestID, _ := c.Get(middleware.RequestIDKey)
		slog.LogAttrs(
			c.Request.Context(),
			slog.LevelInfo,
			"http request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.Int("status", c.Writer.Status()),
			slog.Int("size", c.Writer.Size()),
			slog.Duration("latency", latency),
			slog.String("ip", c.ClientIP()),
			slog.String("request_id", fmt.Sprintf("%v", requestID)),
			slog.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// CORSMiddleware handles CORS
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		allowed := false
		for _, allowedOrigin := range cfg.Security.CORS.AllowedOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed {
			if origin == "" {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
			}
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")
			c.Header("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

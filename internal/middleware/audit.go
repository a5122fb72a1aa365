// audit.go provides Gin middleware that records write operations to the
// audit_logs table for admin accountability.
package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
)

// AuditMiddleware logs actions to the database with default settings
// (successful write operations only).
func AuditMiddleware(auditRepo *repositories.AuditRepository) gin.HandlerFunc {
	return AuditMiddlewareWithConfig(auditRepo, nil)
}

// AuditMiddlewareWithConfig logs actions to the database, honoring the
// audit section of the configuration.
func AuditMiddlewareWithConfig(auditRepo *repositories.AuditRepository, auditCfg *config.AuditConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Process request first
		c.Next()

		// Skip OPTIONS always
		if c.Request.Method == "OPTIONS" {
			return
		}

		if auditCfg != nil && !auditCfg.Enabled {
			return
		}

		logReadOps := auditCfg != nil && auditCfg.LogReadOperations
		logFailedReqs := auditCfg != nil && auditCfg.LogFailedRequests

		isReadOp := c.Request.Method == "GET"
		isFailed := c.Writer.Status() >= 400

		// Default behavior: only log successful write operations
		if auditCfg == nil {
			if isReadOp || isFailed {
				return
			}
		} else {
			if isReadOp && !logReadOps {
				return
			}
			if isFailed && !logFailedReqs {
				return
			}
		}

		path := c.Request.URL.Path
		ipAddress := c.ClientIP()

		auditLog := &models.AuditLog{
			Action:    c.Request.Method + " " + path,
			IPAddress: &ipAddress,
		}

		// Actor, when authenticated
		if volunteerID := c.GetString("volunteer_id"); volunteerID != "" {
			id := volunteerID
			auditLog.VolunteerID = &id
		}

		// Resource type and domain action from the URL path
		var resourceType string
		switch {
		case strings.Contains(path, "/requests"):
			resourceType = "organization_request"
			if strings.HasSuffix(path, "/approve") {
				auditLog.Action = "request.approve"
			} else if c.Request.Method == "DELETE" {
				// Rejection is DELETE /requests/:id, no verb suffix.
				auditLog.Action = "request.reject"
			}
		case strings.Contains(path, "/organization"):
			resourceType = "organization_request"
			if c.Request.Method == "POST" {
				auditLog.Action = "request.submit"
			}
		case strings.Contains(path, "/accounts"):
			resourceType = "organization_account"
		case strings.Contains(path, "/profile"):
			resourceType = "volunteer"
			if c.Request.Method == "PUT" {
				auditLog.Action = "profile.update"
			}
		case strings.Contains(path, "/auth"):
			resourceType = "volunteer"
		}
		if resourceType != "" {
			auditLog.ResourceType = &resourceType
		}

		if resourceID := c.Param("id"); resourceID != "" {
			id := resourceID
			auditLog.ResourceID = &id
		}

		auditLog.Metadata = map[string]interface{}{
			"status_code": c.Writer.Status(),
		}

		// Async log creation (non-blocking)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := auditRepo.CreateAuditLog(ctx, auditLog); err != nil {
				slog.Error("failed to create audit log", "action", auditLog.Action, "error", err)
			}
		}()
	}
}

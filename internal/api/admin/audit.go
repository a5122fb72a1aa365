// audit.go implements read access to the audit log for administrators.
package admin

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
)

// AuditHandlers handles audit log retrieval endpoints.
type AuditHandlers struct {
	auditRepo *repositories.AuditRepository
}

// NewAuditHandlers creates a new AuditHandlers instance
func NewAuditHandlers(db *sql.DB) *AuditHandlers {
	return &AuditHandlers{auditRepo: repositories.NewAuditRepository(db)}
}

// @Summary      List audit logs
// @Description  Get a paginated, filterable list of audit log entries. Requires the admin role.
// @Tags         Admin
// @Security     Bearer
// @Produce      json
// @Param        volunteer_id   query  string  false  "Filter by acting volunteer"
// @Param        action         query  string  false  "Filter by action (e.g. request.approve)"
// @Param        resource_type  query  string  false  "Filter by resource type"
// @Param        start_date     query  string  false  "RFC 3339 lower bound"
// @Param        end_date       query  string  false  "RFC 3339 upper bound"
// @Param        page           query  int     false  "Page number (default 1)"
// @Param        per_page       query  int     false  "Items per page, max 100 (default 20)"
// @Success      200  {object}  map[string]interface{}  "logs: []models.AuditLog, pagination: map"
// @Failure      400  {object}  map[string]interface{}  "Invalid filter"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/admin/audit-logs [get]
// ListAuditLogsHandler lists audit log entries with filters and pagination
// GET /api/v1/admin/audit-logs
func (h *AuditHandlers) ListAuditLogsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

		if page < 1 {
			page = 1
		}
		if perPage < 1 || perPage > 100 {
			perPage = 20
		}

		filters := repositories.AuditFilters{}
		if v := c.Query("volunteer_id"); v != "" {
			filters.VolunteerID = &v
		}
		if v := c.Query("action"); v != "" {
			filters.Action = &v
		}
		if v := c.Query("resource_type"); v != "" {
			filters.ResourceType = &v
		}
		if v := c.Query("start_date"); v != "" {
			start, err := time.Parse(time.RFC3339, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date: expected RFC 3339"})
				return
			}
			filters.StartDate = &start
		}
		if v := c.Query("end_date"); v != "" {
			end, err := time.Parse(time.RFC3339, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date: expected RFC 3339"})
				return
			}
			filters.EndDate = &end
		}

		offset := (page - 1) * perPage

		logs, total, err := h.auditRepo.ListAuditLogs(c.Request.Context(), filters, perPage, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list audit logs",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"logs": logs,
			"pagination": gin.H{
				"page":     page,
				"per_page": perPage,
				"total":    total,
			},
		})
	}
}

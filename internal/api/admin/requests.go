// Package admin implements the administrator review endpoints for pending
// organization signup requests, plus audit log retrieval.
package admin

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
	"github.com/volunteerhub/volunteerhub/internal/services"
	"github.com/volunteerhub/volunteerhub/internal/telemetry"
)

// RequestHandlers handles the signup-request review endpoints.
type RequestHandlers struct {
	requestRepo *repositories.OrganizationRequestRepository
	review      *services.ReviewService
}

// NewRequestHandlers creates a new RequestHandlers instance
func NewRequestHandlers(db *sql.DB, review *services.ReviewService) *RequestHandlers {
	return &RequestHandlers{
		requestRepo: repositories.NewOrganizationRequestRepository(db),
		review:      review,
	}
}

// @Summary      List pending signup requests
// @Description  Get a paginated list of pending organization signup requests, oldest first. Requires the admin role.
// @Tags         Admin
// @Security     Bearer
// @Produce      json
// @Param        page      query  int  false  "Page number (default 1)"
// @Param        per_page  query  int  false  "Items per page, max 100 (default 20)"
// @Success      200  {object}  map[string]interface{}  "requests: []models.OrganizationRequest, pagination: map"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      403  {object}  map[string]interface{}  "Admin access required"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/admin/requests [get]
// ListRequestsHandler lists pending signup requests with pagination
// GET /api/v1/admin/requests?page=1&per_page=20
func (h *RequestHandlers) ListRequestsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

		if page < 1 {
			page = 1
		}
		if perPage < 1 || perPage > 100 {
			perPage = 20
		}

		offset := (page - 1) * perPage

		requests, total, err := h.requestRepo.List(c.Request.Context(), perPage, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list signup requests",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"requests": requests,
			"pagination": gin.H{
				"page":     page,
				"per_page": perPage,
				"total":    total,
			},
		})
	}
}

// @Summary      Approve signup request
// @Description  Approve a pending signup request: creates the organization account with a generated credential, deletes the request, and emails the organization. Requires the admin role.
// @Tags         Admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Request ID"
// @Success      200  {object}  map[string]interface{}  "account: models.OrganizationAccount"
// @Failure      404  {object}  map[string]interface{}  "Request not found"
// @Failure      409  {object}  map[string]interface{}  "Account already exists"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/admin/requests/{id}/approve [post]
// ApproveRequestHandler approves a pending signup request
// POST /api/v1/admin/requests/:id/approve
func (h *RequestHandlers) ApproveRequestHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("id")

		account, err := h.review.Approve(c.Request.Context(), requestID)
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Signup request not found",
			})
		case errors.Is(err, services.ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An account with this email already exists",
			})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to approve signup request",
			})
		default:
			telemetry.AdminDecisionsTotal.WithLabelValues("approve").Inc()
			c.JSON(http.StatusOK, gin.H{
				"account": account,
			})
		}
	}
}

// @Summary      Reject signup request
// @Description  Reject a pending signup request: deletes it and sends a courtesy email. Requires the admin role.
// @Tags         Admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Request ID"
// @Success      200  {object}  map[string]interface{}  "empty object"
// @Failure      404  {object}  map[string]interface{}  "Request not found"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/admin/requests/{id} [delete]
// RejectRequestHandler rejects a pending signup request
// DELETE /api/v1/admin/requests/:id
func (h *RequestHandlers) RejectRequestHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("id")

		err := h.review.Reject(c.Request.Context(), requestID)
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Signup request not found",
			})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to reject signup request",
			})
		default:
			telemetry.AdminDecisionsTotal.WithLabelValues("reject").Inc()
			c.JSON(http.StatusOK, gin.H{})
		}
	}
}

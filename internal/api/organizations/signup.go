// Package organizations implements the public organization signup endpoint.
package organizations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/services"
	"github.com/volunteerhub/volunteerhub/internal/telemetry"
)

// SignupHandlers handles organization signup requests.
type SignupHandlers struct {
	signup *services.SignupService
}

// NewSignupHandlers creates a new SignupHandlers instance
func NewSignupHandlers(signup *services.SignupService) *SignupHandlers {
	return &SignupHandlers{signup: signup}
}

// SignupRequest represents the organization signup payload
type SignupRequest struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	PhoneNumber  *string  `json:"phone_number"`
	URL          string   `json:"url" binding:"required,url"`
	LocationName string   `json:"location_name" binding:"required"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// @Summary      Submit organization signup request
// @Description  Submit a request for an organization account. The request is reviewed by an administrator before an account is created.
// @Tags         Organizations
// @Accept       json
// @Produce      json
// @Param        body  body  SignupRequest  true  "Signup request"
// @Success      200  {object}  map[string]interface{}  "empty object"
// @Failure      400  {object}  map[string]interface{}  "Validation error or duplicate email"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /organization/request [post]
// SubmitHandler accepts a new organization signup request
// POST /organization/request
func (h *SignupHandlers) SubmitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			telemetry.SignupRequestsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}

		request := &models.OrganizationRequest{
			Name:         req.Name,
			Email:        req.Email,
			PhoneNumber:  req.PhoneNumber,
			URL:          req.URL,
			LocationName: req.LocationName,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
		}

		err := h.signup.SubmitRequest(c.Request.Context(), request)
		switch {
		case errors.Is(err, services.ErrAccountExists):
			telemetry.SignupRequestsTotal.WithLabelValues("account_exists").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "An account with this email already exists",
			})
		case errors.Is(err, services.ErrRequestPending):
			telemetry.SignupRequestsTotal.WithLabelValues("request_pending").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "A request with this email is already pending",
			})
		case err != nil:
			telemetry.SignupRequestsTotal.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to submit signup request",
			})
		default:
			telemetry.SignupRequestsTotal.WithLabelValues("accepted").Inc()
			c.JSON(http.StatusOK, gin.H{})
		}
	}
}

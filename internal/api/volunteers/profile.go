// profile.go implements the volunteer profile editor API: reading the profile
// and saving description, skills, CV reference, and visibility.
package volunteers

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
	"github.com/volunteerhub/volunteerhub/internal/telemetry"
)

// ProfileHandlers handles the volunteer profile endpoints.
type ProfileHandlers struct {
	cfg           *config.Config
	volunteerRepo *repositories.VolunteerRepository
}

// NewProfileHandlers creates a new ProfileHandlers instance
func NewProfileHandlers(cfg *config.Config, db *sqlx.DB) *ProfileHandlers {
	return &ProfileHandlers{
		cfg:           cfg,
		volunteerRepo: repositories.NewVolunteerRepository(db),
	}
}

// UpdateProfileRequest represents the profile save payload
type UpdateProfileRequest struct {
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	CV          *string  `json:"cv"`
	Privacy     string   `json:"privacy" binding:"required,oneof=public private"`
}

// unavailableFields declares which profile fields this deployment cannot
// store. The client disables the matching controls instead of guessing from
// absent values.
func (h *ProfileHandlers) unavailableFields() []string {
	fields := make([]string, 0, 1)
	if !h.cfg.Profiles.CVEnabled {
		fields = append(fields, "cv")
	}
	return fields
}

func (h *ProfileHandlers) profileResponse(volunteer *models.Volunteer, skills []string) gin.H {
	return gin.H{
		"volunteer":         volunteer,
		"skills":            skills,
		"cv":                volunteer.CVURL,
		"privacy":           volunteer.Visibility,
		"unavailableFields": h.unavailableFields(),
	}
}

// @Summary      Get volunteer profile
// @Description  Returns the authenticated volunteer's profile, skills, CV reference, visibility, and the fields this deployment does not support.
// @Tags         Profile
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "volunteer, skills, cv, privacy, unavailableFields"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /volunteer/profile [get]
// GetProfileHandler returns the authenticated volunteer's profile
// GET /volunteer/profile
func (h *ProfileHandlers) GetProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		volunteer := volunteerFromContext(c)
		if volunteer == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		skills, err := h.volunteerRepo.GetSkills(c.Request.Context(), volunteer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load profile",
			})
			return
		}

		c.JSON(http.StatusOK, h.profileResponse(volunteer, skills))
	}
}

// @Summary      Update volunteer profile
// @Description  Saves description, skills, CV reference, and visibility. Skills replace the stored list, preserving order. Fields listed in unavailableFields are ignored.
// @Tags         Profile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  UpdateProfileRequest  true  "Profile update"
// @Success      200  {object}  map[string]interface{}  "volunteer, skills, cv, privacy, unavailableFields"
// @Failure      400  {object}  map[string]interface{}  "Validation error"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /volunteer/profile [put]
// UpdateProfileHandler saves the authenticated volunteer's profile
// PUT /volunteer/profile
func (h *ProfileHandlers) UpdateProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		volunteer := volunteerFromContext(c)
		if volunteer == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			telemetry.ProfileUpdatesTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}

		// Bound is in characters, not bytes, so multibyte text within the
		// limit is accepted.
		maxLen := h.cfg.Profiles.DescriptionMaxLength
		if utf8.RuneCountInString(req.Description) > maxLen {
			telemetry.ProfileUpdatesTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Description must be at most %d characters", maxLen),
			})
			return
		}

		// When CV storage is unavailable the submitted value is ignored and
		// the stored reference kept as-is.
		cvURL := req.CV
		if !h.cfg.Profiles.CVEnabled {
			cvURL = volunteer.CVURL
		}

		skills := req.Skills
		if skills == nil {
			skills = []string{}
		}

		err := h.volunteerRepo.UpdateProfile(
			c.Request.Context(), volunteer.ID, req.Description, cvURL, req.Privacy, skills,
		)
		if err != nil {
			telemetry.ProfileUpdatesTotal.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to save profile",
			})
			return
		}

		volunteer.Description = req.Description
		volunteer.CVURL = cvURL
		volunteer.Visibility = req.Privacy

		telemetry.ProfileUpdatesTotal.WithLabelValues("saved").Inc()
		c.JSON(http.StatusOK, h.profileResponse(volunteer, skills))
	}
}

// volunteerFromContext reads the volunteer placed in the context by the auth
// middleware.
func volunteerFromContext(c *gin.Context) *models.Volunteer {
	value, exists := c.Get("volunteer")
	if !exists {
		return nil
	}
	volunteer, ok := value.(*models.Volunteer)
	if !ok {
		return nil
	}
	return volunteer
}

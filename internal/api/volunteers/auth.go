// Package volunteers implements the volunteer-facing endpoints: registration,
// login, and the profile editor API.
package volunteers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
	"github.com/volunteerhub/volunteerhub/internal/validation"
)

// AuthHandlers handles volunteer registration and login.
type AuthHandlers struct {
	cfg           *config.Config
	volunteerRepo *repositories.VolunteerRepository
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(cfg *config.Config, db *sqlx.DB) *AuthHandlers {
	return &AuthHandlers{
		cfg:           cfg,
		volunteerRepo: repositories.NewVolunteerRepository(db),
	}
}

// RegisterRequest represents the volunteer registration payload
type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	BirthDate string `json:"birth_date"` // RFC 3339 date, e.g. 1990-04-21
	Gender    string `json:"gender"`
}

// LoginRequest represents the volunteer login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Register volunteer
// @Description  Create a volunteer account. The email must not already be registered.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body  RegisterRequest  true  "Registration request"
// @Success      201  {object}  map[string]interface{}  "volunteer: models.Volunteer, token: string"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Failure      409  {object}  map[string]interface{}  "Email already registered"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /auth/register [post]
// RegisterHandler creates a new volunteer account
// POST /auth/register
func (h *AuthHandlers) RegisterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}

		var birthDate *time.Time
		if req.BirthDate != "" {
			parsed, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Invalid birth_date: expected YYYY-MM-DD",
				})
				return
			}
			birthDate = &parsed
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create account",
			})
			return
		}

		volunteer := &models.Volunteer{
			Name:      req.Name,
			Email:     validation.NormalizeEmail(req.Email),
			Password:  string(hash),
			BirthDate: birthDate,
			Gender:    req.Gender,
		}

		if err := h.volunteerRepo.Create(c.Request.Context(), volunteer); err != nil {
			if errors.Is(err, repositories.ErrDuplicateEmail) {
				c.JSON(http.StatusConflict, gin.H{
					"error": "A volunteer with this email already exists",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create account",
			})
			return
		}

		token, err := auth.GenerateJWT(volunteer.ID.String(), volunteer.Email, h.roleFor(volunteer.Email), h.cfg.Auth.TokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to issue session token",
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"volunteer": volunteer,
			"token":     token,
		})
	}
}

// @Summary      Volunteer login
// @Description  Authenticate a volunteer and issue a session token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body  LoginRequest  true  "Login request"
// @Success      200  {object}  map[string]interface{}  "volunteer: models.Volunteer, token: string"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Failure      401  {object}  map[string]interface{}  "Invalid email or password"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /auth/login [post]
// LoginHandler authenticates a volunteer
// POST /auth/login
func (h *AuthHandlers) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}

		email := validation.NormalizeEmail(req.Email)

		volunteer, err := h.volunteerRepo.GetByEmail(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to authenticate",
			})
			return
		}

		// Run the bcrypt comparison even for unknown emails so response timing
		// does not reveal which addresses are registered.
		storedHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
		if volunteer != nil {
			storedHash = volunteer.Password
		}
		compareErr := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password))
		if volunteer == nil || compareErr != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}

		token, err := auth.GenerateJWT(volunteer.ID.String(), volunteer.Email, h.roleFor(volunteer.Email), h.cfg.Auth.TokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to issue session token",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"volunteer": volunteer,
			"token":     token,
		})
	}
}

// roleFor maps configured administrator emails to the admin role.
func (h *AuthHandlers) roleFor(email string) string {
	if h.cfg.Auth.IsAdminEmail(email) {
		return auth.RoleAdmin
	}
	return auth.RoleVolunteer
}

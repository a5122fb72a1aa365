// auth.go validates bearer-token authentication and populates the request
// context with the authenticated volunteer's identity and role.
//
// Middleware ordering matters and is enforced in router.go:
//
//	Security → RateLimit → Auth → Audit → Handler
//
// Security headers run first so they appear on all responses including errors.
// Rate limiting runs before auth to block brute-force attacks before any DB work.
// Audit logging runs after auth so recorded actions carry the actor identity.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
)

// AuthMiddleware validates the Bearer JWT and loads the volunteer it names.
// On success the context carries "volunteer", "volunteer_id", "email" and "role".
func AuthMiddleware(volunteerRepo *repositories.VolunteerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check for Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing authorization header",
			})
			return
		}

		// Check if it starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header must start with 'Bearer '",
			})
			return
		}

		// Extract token
		token := strings.TrimPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is empty",
			})
			return
		}

		claims, err := auth.ValidateJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid credentials",
			})
			return
		}

		volunteerID, err := uuid.Parse(claims.VolunteerID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid credentials",
			})
			return
		}

		volunteer, err := volunteerRepo.GetByID(c.Request.Context(), volunteerID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load volunteer",
			})
			return
		}

		if volunteer == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Volunteer not found",
			})
			return
		}

		// Set context values
		c.Set("volunteer", volunteer)
		c.Set("volunteer_id", volunteer.ID.String())
		c.Set("email", volunteer.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireAdmin gates a route group on the admin role carried in the token.
// Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			return
		}

		c.Next()
	}
}

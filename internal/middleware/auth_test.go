package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
)

var volunteerCols = []string{
	"id", "name", "email", "password", "birth_date", "gender",
	"description", "cv_url", "visibility", "created_at", "updated_at",
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := repositories.NewVolunteerRepository(sqlx.NewDb(db, "sqlmock"))

	router := gin.New()
	router.Use(AuthMiddleware(repo))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"volunteer_id": c.GetString("volunteer_id"),
			"email":        c.GetString("email"),
			"role":         c.GetString("role"),
		})
	})

	admin := router.Group("/admin")
	admin.Use(RequireAdmin())
	admin.GET("/only", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	return router, mock
}

func volunteerRow(id uuid.UUID, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(volunteerCols).AddRow(
		id, "Jane Doe", email, "$2a$10$hash", nil, "female",
		"", nil, "public", now, now,
	)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_EmptyToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer   ")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, mock := newAuthTestRouter(t)

	volunteerID := uuid.New()
	token, err := auth.GenerateJWT(volunteerID.String(), "jane@example.org", auth.RoleVolunteer, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	mock.ExpectQuery(`SELECT (.+) FROM volunteers WHERE id = \$1`).
		WithArgs(volunteerID).
		WillReturnRows(volunteerRow(volunteerID, "jane@example.org"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAuthMiddleware_UnknownVolunteer(t *testing.T) {
	router, mock := newAuthTestRouter(t)

	volunteerID := uuid.New()
	token, err := auth.GenerateJWT(volunteerID.String(), "gone@example.org", auth.RoleVolunteer, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	mock.ExpectQuery(`SELECT (.+) FROM volunteers WHERE id = \$1`).
		WithArgs(volunteerID).
		WillReturnRows(sqlmock.NewRows(volunteerCols))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdmin_ForbidsVolunteerRole(t *testing.T) {
	router, mock := newAuthTestRouter(t)

	volunteerID := uuid.New()
	token, err := auth.GenerateJWT(volunteerID.String(), "jane@example.org", auth.RoleVolunteer, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	mock.ExpectQuery(`SELECT (.+) FROM volunteers WHERE id = \$1`).
		WithArgs(volunteerID).
		WillReturnRows(volunteerRow(volunteerID, "jane@example.org"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAdmin_AllowsAdminRole(t *testing.T) {
	router, mock := newAuthTestRouter(t)

	volunteerID := uuid.New()
	token, err := auth.GenerateJWT(volunteerID.String(), "admin@volunteerhub.org", auth.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	mock.ExpectQuery(`SELECT (.+) FROM volunteers WHERE id = \$1`).
		WithArgs(volunteerID).
		WillReturnRows(volunteerRow(volunteerID, "admin@volunteerhub.org"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub/internal/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("VHUB_JWT_SECRET", "test-jwt-secret-that-is-32-chars!!")
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
			RateLimiting: config.RateLimitingConfig{
				Enabled: true,
				Backend: "memory",
			},
		},
		Audit: config.AuditConfig{Enabled: false},
		Notifications: config.NotificationsConfig{
			Enabled: false,
		},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	router, bg := NewRouter(testConfig(), db)
	t.Cleanup(bg.Shutdown)
	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", resp["status"])
	}
}

func TestReadinessEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ready", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestVersionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/version", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["api_version"] != "v1" {
		t.Errorf("api_version = %v, want v1", resp["api_version"])
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/volunteer/profile", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAdminRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/requests", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "https://app.volunteerhub.org")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.volunteerhub.org" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/does-not-exist", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

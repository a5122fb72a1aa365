package volunteers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
)

var volunteerCols = []string{
	"id", "name", "email", "password", "birth_date", "gender",
	"description", "cv_url", "visibility", "created_at", "updated_at",
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			TokenTTL:    time.Hour,
			AdminEmails: []string{"admin@volunteerhub.org"},
		},
		Profiles: config.ProfilesConfig{
			DescriptionMaxLength: 500,
			CVEnabled:            true,
		},
	}
}

func newAuthRouter(t *testing.T, cfg *config.Config) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	handlers := NewAuthHandlers(cfg, sqlx.NewDb(db, "sqlmock"))

	router := gin.New()
	router.POST("/auth/register", handlers.RegisterHandler())
	router.POST("/auth/login", handlers.LoginHandler())
	return router, mock
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegisterHandler_Success(t *testing.T) {
	router, mock := newAuthRouter(t, testConfig())

	mock.ExpectExec(`INSERT INTO volunteers`).
		WithArgs(
			sqlmock.AnyArg(), "Jane Doe", "jane@example.org", sqlmock.AnyArg(),
			sqlmock.AnyArg(), "female", "", nil, "public",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := postJSON(t, router, "/auth/register", map[string]interface{}{
		"name":       "Jane Doe",
		"email":      "Jane@Example.org", // stored normalized
		"password":   "hunter2hunter2",
		"birth_date": "1990-04-21",
		"gender":     "female",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	claims, err := auth.ValidateJWT(resp.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.Role != auth.RoleVolunteer {
		t.Errorf("role = %s, want volunteer", claims.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	router, mock := newAuthRouter(t, testConfig())

	mock.ExpectExec(`INSERT INTO volunteers`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "volunteers_email_key"})

	w := postJSON(t, router, "/auth/register", map[string]interface{}{
		"name":     "Jane Doe",
		"email":    "jane@example.org",
		"password": "hunter2hunter2",
	})

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestRegisterHandler_ShortPassword(t *testing.T) {
	router, _ := newAuthRouter(t, testConfig())

	w := postJSON(t, router, "/auth/register", map[string]interface{}{
		"name":     "Jane Doe",
		"email":    "jane@example.org",
		"password": "short",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegisterHandler_BadBirthDate(t *testing.T) {
	router, _ := newAuthRouter(t, testConfig())

	w := postJSON(t, router, "/auth/register", map[string]interface{}{
		"name":       "Jane Doe",
		"email":      "jane@example.org",
		"password":   "hunter2hunter2",
		"birth_date": "21/04/1990",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func loginRow(t *testing.T, id uuid.UUID, email, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	now := time.Now()
	return sqlmock.NewRows(volunteerCols).AddRow(
		id, "Jane Doe", email, string(hash), nil, "female",
		"", nil, "public", now, now,
	)
}

func TestLoginHandler_Success(t *testing.T) {
	router, mock := newAuthRouter(t, testConfig())

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM volunteers WHERE email = \$1`).
		WithArgs("jane@example.org").
		WillReturnRows(loginRow(t, id, "jane@example.org", "hunter2hunter2"))

	w := postJSON(t, router, "/auth/login", map[string]interface{}{
		"email":    "Jane@Example.org", // lookup uses the normalized form
		"password": "hunter2hunter2",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	claims, err := auth.ValidateJWT(resp.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.VolunteerID != id.String() {
		t.Errorf("VolunteerID = %s, want %s", claims.VolunteerID, id)
	}
	if claims.Role != auth.RoleVolunteer {
		t.Errorf("role = %s, want volunteer", claims.Role)
	}
}

func TestLoginHandler_AdminEmailGetsAdminRole(t *testing.T) {
	router, mock := newAuthRouter(t, testConfig())

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM volunteers WHERE email = \$1`).
		WithArgs("admin@volunteerhub.org").
		WillReturnRows(loginRow(t, id, "admin@volunteerhub.org", "hunter2hunter2"))

	w := postJSON(t, router, "/auth/login", map[string]interface{}{
		"email":    "admin@volunteerhub.org",
		"password": "hunter2hunter2",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	claims, err := auth.ValidateJWT(resp.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.Role != auth.RoleAdmin {
		t.Errorf("role = %s, want admin", claims.Role)
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	router, mock := newAuthRouter(t, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM volunteers WHERE email = \$1`).
		WithArgs("jane@example.org").
		WillReturnRows(loginRow(t, uuid.New(), "jane@example.org", "hunter2hunter2"))

	w := postJSON(t, router, "/auth/login", map[string]interface{}{
		"email":    "jane@example.org",
		"password": "wrong-password",
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLoginHandler_UnknownEmail(t *testing.T) {
	router, mock := newAuthRouter(t, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM volunteers WHERE email = \$1`).
		WithArgs("nobody@example.org").
		WillReturnRows(sqlmock.NewRows(volunteerCols))

	w := postJSON(t, router, "/auth/login", map[string]interface{}{
		"email":    "nobody@example.org",
		"password": "hunter2hunter2",
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

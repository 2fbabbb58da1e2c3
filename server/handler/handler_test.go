package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/auth"
	"github.com/skillsenselab/authd/authz"
	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/password"
	"github.com/skillsenselab/authd/token"
	"github.com/skillsenselab/authd/user"
)

// newTestEngine builds a full engine: store, service, authenticator, policy,
// and routes, exactly as cmd/authd wires them.
func newTestEngine(t *testing.T) (*gin.Engine, user.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := user.NewMemoryStore()
	hasher := password.NewHasher(password.Config{})
	codec, err := token.NewCodec(token.Config{Secret: "handler-test-secret"})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	log := logger.NewDefault("authd-test")
	svc := auth.NewService(store, hasher, codec, log, nil)

	engine := gin.New()
	Register(engine, svc, authz.Default(), nil, nil, log)
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, engine *gin.Engine, email string) {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "correct horse",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signup status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func signIn(t *testing.T, engine *gin.Engine, email, pw string) (access, refresh string) {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signin", map[string]string{
		"email":    email,
		"password": pw,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signin status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var pair struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode pair: %v", err)
	}
	if pair.Token == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete token pair: %s", rec.Body.String())
	}
	return pair.Token, pair.RefreshToken
}

func TestSignUpSignInAndAccess(t *testing.T) {
	engine, _ := newTestEngine(t)

	signUp(t, engine, "alice@example.com")
	access, _ := signIn(t, engine, "alice@example.com", "correct horse")

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/user", nil, access)
	if rec.Code != http.StatusOK {
		t.Fatalf("user greeting status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "Hi User!" {
		t.Errorf("user greeting body = %q", rec.Body.String())
	}

	// The same token must not open the admin namespace.
	rec = doJSON(t, engine, http.MethodGet, "/api/v1/admin", nil, access)
	if rec.Code != http.StatusForbidden {
		t.Errorf("admin with USER token status = %d, want 403", rec.Code)
	}
}

func TestAdminAccess(t *testing.T) {
	engine, store := newTestEngine(t)

	hasher := password.NewHasher(password.Config{})
	hash, err := hasher.Hash("admin-secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if _, err := store.Save(t.Context(), &user.Account{
		Email:        "admin@example.com",
		FirstName:    "Ada",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	access, _ := signIn(t, engine, "admin@example.com", "admin-secret")

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/admin", nil, access)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin greeting status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "Hi Admin!" {
		t.Errorf("admin greeting body = %q", rec.Body.String())
	}

	// Roles match exactly, admin does not imply user.
	rec = doJSON(t, engine, http.MethodGet, "/api/v1/user", nil, access)
	if rec.Code != http.StatusForbidden {
		t.Errorf("user with ADMIN token status = %d, want 403", rec.Code)
	}
}

func TestProtectedWithoutToken(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, path := range []string{"/api/v1/user", "/api/v1/admin"} {
		rec := doJSON(t, engine, http.MethodGet, path, nil, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without token status = %d, want 401", path, rec.Code)
		}
	}
}

func TestSignInFailuresIndistinguishable(t *testing.T) {
	engine, _ := newTestEngine(t)
	signUp(t, engine, "alice@example.com")

	wrongPw := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signin", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	}, "")
	unknown := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signin", map[string]string{
		"email": "nobody@example.com", "password": "wrong",
	}, "")

	if wrongPw.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want 401 for both", wrongPw.Code, unknown.Code)
	}
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Errorf("failure bodies differ:\n  wrong password: %s\n  unknown email:  %s",
			wrongPw.Body.String(), unknown.Body.String())
	}
}

func TestDuplicateSignUpRejected(t *testing.T) {
	engine, _ := newTestEngine(t)
	signUp(t, engine, "alice@example.com")

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"firstName": "Alice",
		"lastName":  "Again",
		"email":     "alice@example.com",
		"password":  "another pass",
	}, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", rec.Code)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)
	signUp(t, engine, "alice@example.com")
	_, refresh := signIn(t, engine, "alice@example.com", "correct horse")

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"token": refresh,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var pair struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode pair: %v", err)
	}
	if pair.Token == "" {
		t.Error("refresh returned no access token")
	}
	if pair.RefreshToken != refresh {
		t.Error("refresh token should be echoed back unchanged")
	}

	// The fresh access token works on protected paths.
	greet := doJSON(t, engine, http.MethodGet, "/api/v1/user", nil, pair.Token)
	if greet.Code != http.StatusOK {
		t.Errorf("greeting with refreshed token status = %d", greet.Code)
	}
}

func TestRefreshWithGarbageToken(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"token": "not.a.token",
	}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage refresh status = %d, want 401", rec.Code)
	}
}

func TestValidationErrors(t *testing.T) {
	engine, _ := newTestEngine(t)

	cases := []struct {
		name string
		path string
		body any
	}{
		{"signup missing email", "/api/v1/auth/signup", map[string]string{
			"firstName": "A", "lastName": "B", "password": "longenough",
		}},
		{"signup short password", "/api/v1/auth/signup", map[string]string{
			"firstName": "A", "lastName": "B", "email": "a@b.com", "password": "short",
		}},
		{"signin bad email", "/api/v1/auth/signin", map[string]string{
			"email": "not-an-email", "password": "x",
		}},
		{"refresh empty", "/api/v1/auth/refresh", map[string]string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, tc.path, tc.body, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("health status field = %q", body["status"])
	}
}

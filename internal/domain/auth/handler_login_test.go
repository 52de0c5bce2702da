package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/afriframe/studio-api/internal/pkg/jwt"
	"github.com/afriframe/studio-api/internal/pkg/response"
)

func newLoginHandler(t *testing.T) (*Handler, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	svc := NewService(users, newFakeRefreshRepo(), jwt.NewService("test-secret", 15*time.Minute, time.Hour), false)
	return NewHandler(svc), users
}

func loginRequest(t *testing.T, email, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
}

func TestLoginHandlerSuccess(t *testing.T) {
	h, users := newLoginHandler(t)
	seedUser(t, users, "admin@afriframe.rw", "pass-word-123")

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(t, "admin@afriframe.rw", "pass-word-123"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env response.Response
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, _ := json.Marshal(env.Data)
	var auth AuthResponse
	if err := json.Unmarshal(data, &auth); err != nil {
		t.Fatalf("unmarshal auth response: %v", err)
	}
	if auth.Tokens.AccessToken == "" || auth.Tokens.RefreshToken == "" {
		t.Error("expected a token pair in the response")
	}
	if auth.User.Email != "admin@afriframe.rw" {
		t.Errorf("unexpected email %q", auth.User.Email)
	}
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	h, users := newLoginHandler(t)
	seedUser(t, users, "admin@afriframe.rw", "pass-word-123")

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(t, "admin@afriframe.rw", "wrong-password"))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginHandlerValidation(t *testing.T) {
	h, _ := newLoginHandler(t)

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(t, "not-an-email", ""))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestRegisterHandlerClosed(t *testing.T) {
	h, _ := newLoginHandler(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "new@afriframe.rw",
		"password": "long-enough-pass",
	})
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 when signup is closed, got %d", rec.Code)
	}
}

package auth

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/afriframe/studio-api/internal/domain/user"
	"github.com/afriframe/studio-api/internal/pkg/jwt"
	"github.com/afriframe/studio-api/internal/pkg/password"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) UpdateLastLogin(context.Context, uuid.UUID, string) error { return nil }

type fakeRefreshRepo struct {
	mu      sync.Mutex
	records map[string]*RefreshTokenRecord
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{records: make(map[string]*RefreshTokenRecord)}
}

func (f *fakeRefreshRepo) Create(_ context.Context, rec *RefreshTokenRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.CreatedAt = time.Now()
	f.records[rec.TokenHash] = rec
	return nil
}

func (f *fakeRefreshRepo) GetByTokenHash(_ context.Context, hash string) (*RefreshTokenRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[hash]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rec, nil
}

func (f *fakeRefreshRepo) MarkUsed(_ context.Context, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[hash]; ok && !rec.UsedAt.Valid {
		rec.UsedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	return nil
}

func (f *fakeRefreshRepo) RevokeByTokenHash(_ context.Context, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[hash]; ok && !rec.RevokedAt.Valid {
		rec.RevokedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	return nil
}

func (f *fakeRefreshRepo) RevokeAllByUserID(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.UserID == userID && !rec.RevokedAt.Valid {
			rec.RevokedAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
	}
	return nil
}

func (f *fakeRefreshRepo) revokedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	for _, rec := range f.records {
		if rec.RevokedAt.Valid {
			n++
		}
	}
	return n
}

func newTestService(t *testing.T, signupOpen bool) (*Service, *fakeUserRepo, *fakeRefreshRepo) {
	t.Helper()
	users := newFakeUserRepo()
	refresh := newFakeRefreshRepo()
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 30*24*time.Hour)
	return NewService(users, refresh, jwtService, signupOpen), users, refresh
}

func seedUser(t *testing.T, users *fakeUserRepo, email, pass string) *user.User {
	t.Helper()
	hash, err := password.Hash(pass)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &user.User{ID: uuid.New(), Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestRegisterClosedByDefault(t *testing.T) {
	svc, _, _ := newTestService(t, false)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "admin@afriframe.rw",
		Password: "correct-horse-battery",
	})
	if !errors.Is(err, ErrSignupClosed) {
		t.Errorf("expected ErrSignupClosed, got %v", err)
	}
}

func TestRegisterCreatesAccount(t *testing.T) {
	svc, users, _ := newTestService(t, true)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Admin@Afriframe.RW",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, _ := users.GetByEmail(context.Background(), "admin@afriframe.rw")
	if u == nil {
		t.Fatal("email must be stored lowercased")
	}
	if u.PasswordHash == "correct-horse-battery" {
		t.Error("password must not be stored in plain text")
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if resp.Tokens.TokenType != "Bearer" {
		t.Errorf("expected Bearer, got %q", resp.Tokens.TokenType)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _ := newTestService(t, true)
	seedUser(t, users, "admin@afriframe.rw", "pass-word-123")

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "ADMIN@afriframe.rw",
		Password: "another-pass-456",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestService(t, false)
	seedUser(t, users, "admin@afriframe.rw", "pass-word-123")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "admin@afriframe.rw", "pass-word-123", nil},
		{"case insensitive email", "Admin@Afriframe.RW", "pass-word-123", nil},
		{"wrong password", "admin@afriframe.rw", "wrong", ErrInvalidCredentials},
		{"unknown email", "nobody@afriframe.rw", "pass-word-123", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), &LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}, "test-agent", "127.0.0.1")

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && resp.Tokens.AccessToken == "" {
				t.Error("expected access token on success")
			}
		})
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, users, _ := newTestService(t, false)
	seedUser(t, users, "admin@afriframe.rw", "pass-word-123")

	first, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@afriframe.rw",
		Password: "pass-word-123",
	}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := svc.Refresh(context.Background(), first.Tokens.RefreshToken, "", "")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.Tokens.RefreshToken == first.Tokens.RefreshToken {
		t.Error("refresh must rotate the token")
	}
}

func TestRefreshReuseRevokesFamily(t *testing.T) {
	svc, users, refresh := newTestService(t, false)
	seedUser(t, users, "admin@afriframe.rw", "pass-word-123")

	first, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@afriframe.rw",
		Password: "pass-word-123",
	}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), first.Tokens.RefreshToken, "", ""); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	// Replaying the rotated token is treated as theft
	_, err = svc.Refresh(context.Background(), first.Tokens.RefreshToken, "", "")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken on reuse, got %v", err)
	}

	if refresh.revokedCount() == 0 {
		t.Error("reuse must revoke the session family")
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, users, _ := newTestService(t, false)
	seedUser(t, users, "admin@afriframe.rw", "pass-word-123")

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@afriframe.rw",
		Password: "pass-word-123",
	}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Tokens.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err = svc.Refresh(context.Background(), resp.Tokens.RefreshToken, "", "")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken after logout, got %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, users, _ := newTestService(t, false)
	u := seedUser(t, users, "admin@afriframe.rw", "pass-word-123")

	got, err := svc.GetCurrentUser(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if got.Email != "admin@afriframe.rw" {
		t.Errorf("unexpected email %q", got.Email)
	}

	_, err = svc.GetCurrentUser(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

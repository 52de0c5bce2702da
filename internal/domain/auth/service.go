package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/afriframe/studio-api/internal/domain/user"
	"github.com/afriframe/studio-api/internal/pkg/jwt"
	"github.com/afriframe/studio-api/internal/pkg/password"
)

// Service handles admin authentication business logic
type Service struct {
	userRepo    user.Repository
	refreshRepo RefreshTokenRepository
	jwtService  *jwt.Service
	signupOpen  bool
}

// NewService creates auth service
func NewService(userRepo user.Repository, refreshRepo RefreshTokenRepository, jwtService *jwt.Service, signupOpen bool) *Service {
	return &Service{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		jwtService:  jwtService,
		signupOpen:  signupOpen,
	}
}

// Register creates a new admin account. Closed unless ADMIN_SIGNUP_OPEN is set;
// the first account is normally seeded out-of-band.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if !s.signupOpen {
		return nil, ErrSignupClosed
	}

	req.Email = normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, u, "", "")
}

// Login verifies credentials and issues a token pair
func (s *Service) Login(ctx context.Context, req *LoginRequest, userAgent, ip string) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	_ = s.userRepo.UpdateLastLogin(ctx, u.ID, ip)

	return s.generateTokens(ctx, u, userAgent, ip)
}

// Refresh rotates a refresh token and issues a new pair
func (s *Service) Refresh(ctx context.Context, refreshToken, userAgent, ip string) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	hash := jwt.HashRefreshToken(refreshToken)
	rec, err := s.refreshRepo.GetByTokenHash(ctx, hash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if rec.UsedAt.Valid || rec.RevokedAt.Valid || time.Now().After(rec.ExpiresAt) {
		// Reuse of a rotated token revokes the whole session family
		_ = s.refreshRepo.RevokeAllByUserID(ctx, rec.UserID)
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if err := s.refreshRepo.MarkUsed(ctx, hash); err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, u, userAgent, ip)
}

// Logout revokes the presented refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshRepo.RevokeByTokenHash(ctx, jwt.HashRefreshToken(refreshToken))
}

// GetCurrentUser returns the authenticated account
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	resp := NewUserResponse(u.ID, u.Email, u.CreatedAt)
	return &resp, nil
}

func (s *Service) generateTokens(ctx context.Context, u *user.User, userAgent, ip string) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, jti, expiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	rec := &RefreshTokenRecord{
		ID:        uuid.New(),
		UserID:    u.ID,
		TokenHash: jwt.HashRefreshToken(refreshToken),
		JTI:       jti,
		ExpiresAt: expiresAt,
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := s.refreshRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u.ID, u.Email, u.CreatedAt),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwtService.AccessTTL().Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}

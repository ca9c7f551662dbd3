package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	users       repository.UserRepository
	tokens      repository.RefreshTokenRepository
	cfg         *config.Config
	google      GoogleVerifier
	adminEmails map[string]struct{}
	now         func() time.Time
}

// NewAuthService accepts a nil GoogleVerifier; Google sign-in is then
// reported as not configured.
func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, cfg *config.Config, google GoogleVerifier) *AuthService {
	admins := make(map[string]struct{})
	for _, e := range strings.Split(cfg.AdminEmails, ",") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &AuthService{
		users:       users,
		tokens:      tokens,
		cfg:         cfg,
		google:      google,
		adminEmails: admins,
		now:         time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, newError(ErrInvalidInput, "email is required")
	}
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PhotoURL:     req.PhotoURL,
		Password:     string(hash),
		Role:         models.RoleMember,
		AuthProvider: models.AuthProviderEmail,
		LastLoginAt:  &now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(ctx, &user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.touchLastLogin(ctx, user)
	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.tokens.FindActive(ctx, tokenHash)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Refresh tokens are single use.
	if err := s.tokens.Revoke(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	if s.now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.tokens.Revoke(ctx, hashToken(req.RefreshToken))
}

// GoogleSignIn logs in with a Google ID token, creating a member account on
// first use and linking an existing email account otherwise.
func (s *AuthService) GoogleSignIn(ctx context.Context, req *dto.GoogleSignInRequest) (*dto.AuthResponse, error) {
	if s.google == nil {
		return nil, ErrGoogleNotConfigured
	}
	if req.IDToken == "" {
		return nil, newError(ErrInvalidInput, "id token is required")
	}

	identity, err := s.google.Verify(req.IDToken)
	if err != nil {
		slog.Warn("google token verification failed", "error", err)
		return nil, ErrInvalidGoogleToken
	}
	email := normalizeEmail(identity.Email)
	if identity.Subject == "" || email == "" {
		return nil, ErrInvalidGoogleToken
	}

	user, err := s.users.FindByGoogleID(ctx, identity.Subject)
	if err == nil {
		s.touchLastLogin(ctx, user)
		return s.generateTokenPair(ctx, user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup google user: %w", err)
	}

	user, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.Update(ctx, user.ID, map[string]interface{}{
			"google_id":     identity.Subject,
			"auth_provider": models.AuthProviderGoogle,
		}); err != nil {
			return nil, fmt.Errorf("link google account: %w", err)
		}
		user.GoogleID = &identity.Subject
		user.AuthProvider = models.AuthProviderGoogle
		s.touchLastLogin(ctx, user)
	case errors.Is(err, gorm.ErrRecordNotFound):
		name := strings.TrimSpace(identity.Name)
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		now := s.now()
		user = &models.User{
			ID:           uuid.New(),
			Email:        email,
			Name:         name,
			Role:         models.RoleMember,
			GoogleID:     &identity.Subject,
			AuthProvider: models.AuthProviderGoogle,
			LastLoginAt:  &now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create Google user: %w", err)
		}
	default:
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) touchLastLogin(ctx context.Context, user *models.User) {
	now := s.now()
	if err := s.users.Update(ctx, user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID.String(), "error", err)
		return
	}
	user.LastLoginAt = &now
}

// effectiveRole promotes configured admin emails regardless of stored role.
func (s *AuthService) effectiveRole(user *models.User) models.Role {
	if _, ok := s.adminEmails[user.Email]; ok {
		return models.RoleAdmin
	}
	return user.Role
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	resp.Role = string(s.effectiveRole(user))
	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         resp,
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(s.effectiveRole(user)),
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.tokens.Create(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func ToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PhotoURL:     user.PhotoURL,
		Role:         string(user.Role),
		AuthProvider: user.AuthProvider,
		LastLoginAt:  user.LastLoginAt,
		CreatedAt:    user.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/spec-kit/match-reveal-service/internal/auth"
	"github.com/spec-kit/match-reveal-service/internal/config"
	apperrors "github.com/spec-kit/match-reveal-service/pkg/util/errorutil"
)

// AuthService checks admin credentials and issues session tokens.
//
// The credential check is a verbatim comparison against process-wide
// configuration; the original deployment stores no hashes and this port
// deliberately keeps that boundary. Only the comparison is constant-time.
type AuthService struct {
	cfg    config.AdminConfig
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AdminConfig) *AuthService {
	return &AuthService{
		cfg:    cfg,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
	}
}

// TokenManager exposes the underlying token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login validates the credential pair and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if username == "" || password == "" {
		return "", time.Time{}, apperrors.NewInvalidInput("username and password are required", nil)
	}
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("admin credentials not configured")
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	if !userOK || !passOK {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	return s.tokens.GenerateToken(username)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/match-reveal-service/internal/config"
	apperrors "github.com/spec-kit/match-reveal-service/pkg/util/errorutil"
)

type AuthServiceSuite struct {
	suite.Suite
	service *AuthService
	ctx     context.Context
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.service = NewAuthService(config.AdminConfig{
		Username:          "admin",
		Password:          "secret",
		JWTSecret:         "test-signing-key",
		SessionTTLMinutes: 60,
	})
	s.ctx = context.Background()
}

func (s *AuthServiceSuite) assertCode(err error, code string) {
	s.T().Helper()
	var domainErr *apperrors.DomainError
	s.Require().ErrorAs(err, &domainErr)
	s.Equal(code, domainErr.Code)
}

func (s *AuthServiceSuite) TestLogin() {
	s.Run("issues a parseable token for valid credentials", func() {
		token, expiresAt, err := s.service.Login(s.ctx, "admin", "secret")
		s.Require().NoError(err)
		s.NotEmpty(token)
		s.True(expiresAt.After(time.Now()))

		claims, err := s.service.TokenManager().ParseToken(token)
		s.Require().NoError(err)
		s.Equal("admin", claims.Username)
	})

	s.Run("rejects missing fields", func() {
		_, _, err := s.service.Login(s.ctx, "", "secret")
		s.assertCode(err, "INVALID_INPUT")

		_, _, err = s.service.Login(s.ctx, "admin", "")
		s.assertCode(err, "INVALID_INPUT")
	})

	s.Run("rejects wrong credentials", func() {
		_, _, err := s.service.Login(s.ctx, "admin", "wrong")
		s.assertCode(err, "UNAUTHORIZED")

		_, _, err = s.service.Login(s.ctx, "intruder", "secret")
		s.assertCode(err, "UNAUTHORIZED")
	})

	s.Run("rejects everything when credentials are not configured", func() {
		unconfigured := NewAuthService(config.AdminConfig{JWTSecret: "k", SessionTTLMinutes: 60})
		_, _, err := unconfigured.Login(s.ctx, "admin", "secret")
		s.assertCode(err, "UNAUTHORIZED")
	})
}

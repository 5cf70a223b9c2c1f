package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/match-reveal-service/internal/api/dto"
	"github.com/spec-kit/match-reveal-service/internal/service"
	apperrors "github.com/spec-kit/match-reveal-service/pkg/util/errorutil"
)

// AuthHandler exposes the admin credential check.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /admin/auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	token, expiresAt, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	})
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interaction-analytics/internal/api/dto"
	"github.com/spec-kit/interaction-analytics/internal/auth"
	apperrors "github.com/spec-kit/interaction-analytics/pkg/util/errorutil"
)

// AuthHandler serves login.
type AuthHandler struct {
	authenticator *auth.Authenticator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{authenticator: authenticator}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	token, expiresAt, role, err := h.authenticator.Login(req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		Role:      string(role),
	}})
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/interaction-analytics/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	Username string
	Role     Role
}

// AuthMiddleware validates bearer tokens and attaches the principal.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware builds the middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle authenticates the request or rejects it.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return apperrors.NewUnauthorized("missing bearer token")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(principalKey, Principal{Username: claims.Username, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (Principal, bool) {
	principal, ok := c.Locals(principalKey).(Principal)
	return principal, ok
}

// RequireRole rejects callers whose role does not grant the required one.
func RequireRole(required Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role.Allows(required) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

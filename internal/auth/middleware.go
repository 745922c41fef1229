package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-auth-service/internal/domain"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

const claimsKey = "auth_claims"

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle extracts the bearer token, verifies it, and stores the claims for
// downstream handlers.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		return err
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// RequireRole ensures the authenticated caller holds one of the allowed
// roles. With no arguments it only requires authentication. The role check
// itself is shared with Authorize.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !roleAllowed(claims, allowed) {
			return apperrors.ErrInsufficientRole
		}
		return c.Next()
	}
}

// ClaimsFromContext retrieves the verified claims for the request.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

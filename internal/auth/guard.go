package auth

import (
	"github.com/spec-kit/shop-auth-service/internal/domain"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

// Authorize verifies the token and checks the caller's role against the
// required set. An empty set means any authenticated caller. The verified
// claims are returned so callers can stamp the acting user downstream.
func Authorize(tm *TokenManager, tokenStr string, required ...domain.Role) (*Claims, error) {
	claims, err := tm.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if !roleAllowed(claims, required) {
		return nil, apperrors.ErrInsufficientRole
	}
	return claims, nil
}

// roleAllowed is the single role-set check behind Authorize and the HTTP
// middleware. An empty required set admits any role.
func roleAllowed(claims *Claims, required []domain.Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if claims.Role == role {
			return true
		}
	}
	return false
}

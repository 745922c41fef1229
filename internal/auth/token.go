package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/shop-auth-service/internal/domain"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

// TokenManager handles issuing and validating JWT session tokens.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a new manager around the process-wide signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims describes the JWT payload. Subject carries the user id.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the user with the given lifetime.
// Callers pick the lifetime per flow: one hour for local logins, seven days
// for Shopify-provisioned sessions.
func (tm *TokenManager) Issue(userID, email string, role domain.Role, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the signature and expiry and returns the claims. A token
// that verifies but carries no role claim is rejected: the role guard cannot
// make a decision without one, so such a token is never treated as
// authenticated.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(apperrors.ErrTokenExpired, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.Role == "" {
		return nil, apperrors.ErrTokenMalformed
	}
	return claims, nil
}

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-auth-service/internal/domain"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret")

	token, exp, err := tm.Issue("user-1", "a@x.com", domain.RoleMember, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, domain.RoleMember, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret")

	token, _, err := tm.Issue("user-1", "a@x.com", domain.RoleMember, -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenBadSignature(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("secret-a")
	verifier := NewTokenManager("secret-b")

	token, _, err := issuer.Issue("user-1", "a@x.com", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTokenGarbage(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret")

	_, err := tm.Verify("not-a-token")
	require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	require.NotErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenMissingRoleClaim(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret")

	// A token signed without a role claim must never count as authenticated.
	token, _, err := tm.Issue("user-1", "a@x.com", "", time.Hour)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestTokenExpiredBeatsMalformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret")

	token, _, err := tm.Issue("user-1", "a@x.com", "", -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "TOKEN_EXPIRED", domainErr.Code)
}

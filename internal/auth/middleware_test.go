package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-auth-service/internal/domain"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

func newGuardedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
	mw := NewAuthMiddleware(tm)
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	app.Get("/admin", mw.Handle, RequireRole(domain.RoleAdmin), ok)
	app.Get("/any", mw.Handle, RequireRole(), ok)
	return app
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret")
	app := newGuardedApp(tm)

	memberToken, _, err := tm.Issue("user-1", "m@x.com", domain.RoleMember, time.Hour)
	require.NoError(t, err)
	adminToken, _, err := tm.Issue("user-2", "a@x.com", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	get := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, http.StatusUnauthorized, get("/admin", ""))
	require.Equal(t, http.StatusForbidden, get("/admin", memberToken))
	require.Equal(t, http.StatusOK, get("/admin", adminToken))
	require.Equal(t, http.StatusOK, get("/any", memberToken))
	require.Equal(t, http.StatusUnauthorized, get("/any", "garbage"))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-auth-service/internal/auth"
	"github.com/spec-kit/shop-auth-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Shopify        *handlers.ShopifyHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/shopify", cfg.Shopify.Authorize)
	authGroup.Get("/shopify/callback", cfg.Shopify.Callback)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)

	adminOnly := users.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	adminOnly.Get("/", cfg.Users.List)
	adminOnly.Post("/invites", cfg.Users.Invite)
	adminOnly.Get("/invites", cfg.Users.ListInvites)
	adminOnly.Post("/invites/accept", cfg.Users.AcceptInvite)
	adminOnly.Patch("/:id", cfg.Users.Update)
}

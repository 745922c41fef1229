package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-auth-service/internal/api/dto"
	"github.com/spec-kit/shop-auth-service/internal/service"
)

// ShopifyHandler exposes the OAuth entry point and callback.
type ShopifyHandler struct {
	shopify *service.ShopifyService
}

// NewShopifyHandler constructs handler.
func NewShopifyHandler(shopifyService *service.ShopifyService) *ShopifyHandler {
	return &ShopifyHandler{shopify: shopifyService}
}

// Authorize handles GET /auth/shopify. Browsers get a redirect to the
// provider; API clients get the URL as JSON.
func (h *ShopifyHandler) Authorize(c *fiber.Ctx) error {
	authURL, err := h.shopify.AuthorizationURL(c.Query("shop"))
	if err != nil {
		return err
	}

	if strings.Contains(c.Get("Accept"), "application/json") {
		return c.JSON(fiber.Map{"url": authURL})
	}
	return c.Redirect(authURL, fiber.StatusFound)
}

// Callback handles GET /auth/shopify/callback.
func (h *ShopifyHandler) Callback(c *fiber.Ctx) error {
	token, exp, err := h.shopify.HandleCallback(c.UserContext(), c.Query("shop"), c.Query("code"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"data":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	applog "restockly/internal/log"
	"restockly/internal/validate"
)

// RequireAPIKey guards the admin surface with a shared bearer key.
// An empty configured key locks the surface rather than opening it.
func RequireAPIKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get("X-Api-Key")
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			applog.Security(c, "access.denied.apikey", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return c.Next()
	}
}

// RequireShop resolves and validates the tenant for the request. Shop
// identity is carried explicitly in Locals; nothing downstream relies on
// ambient session state.
func RequireShop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-Shop-Domain")
		if raw == "" {
			raw = c.Query("shop")
		}
		shop, ok := validate.Shop(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "shop", "value": raw})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid shop domain"})
		}
		c.Locals("shop", shop)
		return c.Next()
	}
}

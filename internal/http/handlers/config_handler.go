package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "restockly/internal/log"
	"restockly/internal/services"
)

type ConfigHandler struct {
	Settings *services.SettingsService
}

// Get returns the raw override for a product, or null when none exists.
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	ov, err := h.Settings.Config(shopOf(c), productID)
	if err != nil {
		return fail(c, "config.get.error", err)
	}
	return c.JSON(fiber.Map{"config": ov})
}

// Effective returns the merged configuration the storefront widget renders.
func (h *ConfigHandler) Effective(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	cfg, err := h.Settings.Effective(shopOf(c), productID)
	if err != nil {
		return fail(c, "config.effective.error", err)
	}
	return c.JSON(fiber.Map{"config": cfg})
}

// SaveOutOfStock persists the out-of-stock block; the other blocks keep
// their stored values.
func (h *ConfigHandler) SaveOutOfStock(c *fiber.Ctx) error {
	productID, block, err := decodeOOS(c)
	if err != nil {
		return fail(c, "config.oos.decode", err)
	}
	ov, err := h.Settings.SaveOutOfStock(shopOf(c), productID, block)
	if err != nil {
		return fail(c, "config.oos.save", err)
	}
	applog.Audit(c, "config.oos.saved", map[string]any{"product": productID})
	return c.JSON(fiber.Map{"ok": true, "config": ov})
}

func (h *ConfigHandler) SavePreorder(c *fiber.Ctx) error {
	productID, block, err := decodePreorder(c)
	if err != nil {
		return fail(c, "config.preorder.decode", err)
	}
	ov, err := h.Settings.SavePreorder(shopOf(c), productID, block)
	if err != nil {
		return fail(c, "config.preorder.save", err)
	}
	applog.Audit(c, "config.preorder.saved", map[string]any{"product": productID})
	return c.JSON(fiber.Map{"ok": true, "config": ov})
}

func (h *ConfigHandler) SaveWarranty(c *fiber.Ctx) error {
	productID, block, err := decodeWarranty(c)
	if err != nil {
		return fail(c, "config.warranty.decode", err)
	}
	ov, err := h.Settings.SaveWarranty(shopOf(c), productID, block)
	if err != nil {
		return fail(c, "config.warranty.save", err)
	}
	applog.Audit(c, "config.warranty.saved", map[string]any{"product": productID})
	return c.JSON(fiber.Map{"ok": true, "config": ov})
}

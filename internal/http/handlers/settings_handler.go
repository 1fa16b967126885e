package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "restockly/internal/log"
	"restockly/internal/services"
)

type SettingsHandler struct {
	Settings *services.SettingsService
}

// Get returns the shop defaults, falling back to the system defaults when
// the shop has never saved any.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	d, err := h.Settings.Defaults(shopOf(c))
	if err != nil {
		return fail(c, "settings.get.error", err)
	}
	return c.JSON(fiber.Map{"settings": d})
}

// Save merges only the supplied fields; omitted fields keep their values.
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	patch, err := decodeDefaults(c)
	if err != nil {
		return fail(c, "settings.decode", err)
	}
	d, err := h.Settings.SaveDefaults(shopOf(c), patch)
	if err != nil {
		return fail(c, "settings.save", err)
	}
	applog.Audit(c, "settings.saved", nil)
	return c.JSON(fiber.Map{"ok": true, "settings": d})
}

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "restockly/internal/log"
	"restockly/internal/services"
)

type SubscriptionHandler struct {
	Subs *services.SubscriptionService
}

// Subscribe is the public storefront endpoint: a shopper asks to be told
// when a product is back. Duplicate requests are accepted as-is.
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	productID := c.FormValue("productId")
	email := c.FormValue("email")
	sub, err := h.Subs.Subscribe(shopOf(c), productID, email, c.FormValue("name"), c.FormValue("phone"))
	if err != nil {
		return fail(c, "subscription.create", err)
	}
	applog.Info(c, "subscription.created", map[string]any{"product": productID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "subscription": sub})
}

// Pending lists the FIFO notification queue for a product.
func (h *SubscriptionHandler) Pending(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	subs, err := h.Subs.ListPending(shopOf(c), productID)
	if err != nil {
		return fail(c, "subscription.pending.error", err)
	}
	return c.JSON(fiber.Map{"subscriptions": subs})
}

// MarkNotified records a successful send; only PENDING rows may transition.
func (h *SubscriptionHandler) MarkNotified(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Subs.MarkNotified(id); err != nil {
		return fail(c, "subscription.notify.error", err)
	}
	applog.Audit(c, "subscription.notified", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// MarkError records a failed send; terminal like NOTIFIED.
func (h *SubscriptionHandler) MarkError(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Subs.MarkError(id); err != nil {
		return fail(c, "subscription.error.error", err)
	}
	applog.Audit(c, "subscription.errored", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}

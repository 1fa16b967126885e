package handlers

import (
	"github.com/gofiber/fiber/v2"

	"restockly/internal/services"
)

type ProductsHandler struct {
	Products *services.ProductsService
}

// productDetail is the bulk-details wire shape.
type productDetail struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FeaturedImage string `json:"featuredImage,omitempty"`
}

// Details resolves a comma-delimited id list. Malformed ids are dropped
// before lookup; an empty result is a success, not an error.
func (h *ProductsHandler) Details(c *fiber.Ctx) error {
	found, err := h.Products.Details(c.Context(), shopOf(c), c.Query("ids"))
	if err != nil {
		return fail(c, "products.details.error", err)
	}
	out := make([]productDetail, 0, len(found))
	for _, p := range found {
		out = append(out, productDetail{ID: p.ID, Title: p.Title, FeaturedImage: p.ThumbnailURL})
	}
	return c.JSON(fiber.Map{"products": out})
}

// Configured lists products that have an override row, hydrated from the
// catalog, most recently modified first.
func (h *ProductsHandler) Configured(c *fiber.Ctx) error {
	out, err := h.Products.Configured(c.Context(), shopOf(c))
	if err != nil {
		return fail(c, "products.configured.error", err)
	}
	return c.JSON(fiber.Map{"products": out})
}

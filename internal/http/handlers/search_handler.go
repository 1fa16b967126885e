package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"restockly/internal/apperr"
	applog "restockly/internal/log"
	"restockly/internal/services"
)

type SearchHandler struct {
	Products *services.ProductsService
}

// suggestion is the autocomplete wire shape the admin picker consumes.
type suggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Media string `json:"media,omitempty"`
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		// Contract: empty query is a client error with an empty list,
		// and the catalog is never consulted.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "enter a search term", "products": []suggestion{},
		})
	}
	found, err := h.Products.Search(c.Context(), shopOf(c), q, 10)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": q})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(), "products": []suggestion{},
			})
		}
		return fail(c, "search.error", err)
	}
	out := make([]suggestion, 0, len(found))
	for _, p := range found {
		out = append(out, suggestion{Value: p.ID, Label: p.Title, Media: p.ThumbnailURL})
	}
	return c.JSON(fiber.Map{"products": out})
}

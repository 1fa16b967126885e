package handlers

import (
	"github.com/gofiber/fiber/v2"

	"restockly/internal/domain"
	"restockly/internal/http/forms"
)

func decodeOOS(c *fiber.Ctx) (string, domain.OutOfStockBlock, error) {
	return forms.DecodeOutOfStock(formValues(c))
}

func decodePreorder(c *fiber.Ctx) (string, domain.PreorderBlock, error) {
	return forms.DecodePreorder(formValues(c))
}

func decodeWarranty(c *fiber.Ctx) (string, domain.WarrantyBlock, error) {
	return forms.DecodeWarranty(formValues(c))
}

func decodeDefaults(c *fiber.Ctx) (domain.DefaultsPatch, error) {
	return forms.DecodeDefaults(formValues(c))
}

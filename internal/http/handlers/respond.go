package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"restockly/internal/apperr"
	applog "restockly/internal/log"
)

// fail maps the error taxonomy onto status codes. Storage and upstream
// failures are retryable; the client message never carries internals.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrIntegrity):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrUpstream):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog unavailable, retry shortly"})
	case errors.Is(err, apperr.ErrStorage):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage unavailable, retry shortly"})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}
}

func shopOf(c *fiber.Ctx) string {
	shop, _ := c.Locals("shop").(string)
	return shop
}

// formValues bridges fiber's post args to the url.Values the forms
// boundary decodes.
func formValues(c *fiber.Ctx) url.Values {
	vals := url.Values{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		vals.Add(string(k), string(v))
	})
	return vals
}

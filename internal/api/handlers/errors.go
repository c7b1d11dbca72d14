package handlers

import (
	"errors"

	"catalog-assistant/internal/service"
	"catalog-assistant/pkg/shopify"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var apiErr *shopify.APIError
	switch {
	case errors.Is(err, shopify.ErrMissingCredentials):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, service.ErrUpstreamFetch), errors.As(err, &apiErr):
		return fiber.StatusBadGateway
	case errors.Is(err, service.ErrNotTrained):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNoProducts),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrUnknownBucket),
		errors.Is(err, service.ErrUnknownQuickAction):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

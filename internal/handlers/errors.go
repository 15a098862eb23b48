package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/taste-recommender/internal/logging"
	"alfredoptarigan/taste-recommender/internal/models"
	"alfredoptarigan/taste-recommender/internal/validation"
)

// respondError maps service and validation errors onto HTTP responses.
// Anything unrecognised is logged and reported as a 500 with a generic message.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var ve *validation.RequestValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  ve.Error(),
			"fields": ve.Fields,
		})
	case errors.Is(err, models.ErrMissingText),
		errors.Is(err, models.ErrInvalidContentType),
		errors.Is(err, models.ErrInvalidRequestType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{
			"error": "Request cancelled",
		})
	}

	logging.Error().Err(err).Str("path", c.Path()).Msg(fallback)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}

func invalidPayload(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request payload",
	})
}

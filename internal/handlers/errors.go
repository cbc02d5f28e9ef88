package handlers

import (
	"errors"

	"foodgram/internal/repositories"
	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// handleError writes the response for a service error. Validation failures
// are reported as {field: [message]}; everything else as {message, error}.
func handleError(c *fiber.Ctx, err error, message string) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			verr.Field: []string{verr.Message},
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrPermissionDenied):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrSelfFollow), errors.Is(err, services.ErrEmptyCart):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	}

	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(message)
		return c.Status(status).JSON(fiber.Map{
			"message": message,
		})
	}
	log.Debug().Err(err).Str("method", c.Method()).Str("path", c.Path()).Int("status", status).Msg(message)
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func badRequestBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// pageFromQuery reads the page and limit query parameters.
func pageFromQuery(c *fiber.Ctx, defaultSize int) repositories.Page {
	return repositories.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("limit", defaultSize),
	}.Normalize()
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Authentication credentials were not provided",
	})
}

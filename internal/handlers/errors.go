package handlers

import (
	"errors"

	"stockroom/internal/dto"
	"stockroom/pkg/e"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// respondError maps a service error onto a status code and the usual
// {"message", "error"} body. Validation failures also carry the field errors.
func respondError(c *fiber.Ctx, log *logrus.Logger, message string, err error) error {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
			"errors":  verr.Fields,
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, e.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrInsufficientStock):
		status = fiber.StatusBadRequest
	case errors.Is(err, e.ErrConflict):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error(message)
	}

	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// parseID reads the :id route parameter as a positive integer.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, e.InvalidInputf("id %q must be a positive integer", c.Params("id"))
	}
	return uint(id), nil
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

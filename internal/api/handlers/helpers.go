package handlers

import (
	"errors"

	"github.com/bkmarketing/post-composer/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetSessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals("session_id").(string)
	return sessionID
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errors.New("Unable to parse request body")
	}
	return validate.Struct(out)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// errorStatus maps draft validation failures to 422 and the rest to 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrUnknownPage),
		errors.Is(err, service.ErrUnsupportedMedia),
		errors.Is(err, service.ErrEmptyEmoji),
		errors.Is(err, service.ErrScheduleIncomplete),
		errors.Is(err, service.ErrInvalidSchedule),
		errors.Is(err, service.ErrScheduleInPast),
		errors.Is(err, service.ErrNoPages),
		errors.Is(err, service.ErrNoContent):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

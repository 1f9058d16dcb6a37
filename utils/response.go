package utils

import (
	"keyless-stay/apperror"
	"keyless-stay/logger"
	"keyless-stay/types"

	"github.com/gofiber/fiber/v2"
)

// Respond writes the standard envelope
func Respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// RespondError maps err to its HTTP status. Internal errors never leak their message.
func RespondError(c *fiber.Ctx, err error, fallback string) error {
	status := apperror.StatusCode(err)
	kind := apperror.KindOf(err)

	message := err.Error()
	if kind == apperror.KindInternal {
		logger.Error(fallback, err)
		message = fallback
	}

	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
		Data:    fiber.Map{"code": kind},
	})
}

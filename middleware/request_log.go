package middleware

import (
	"keyless-stay/logger"
	"keyless-stay/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger queues a sanitized copy of every request and response for the logs table
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		asyncLogger.Log(utils.CreateSanitizedLogEntry(c, GetIdentity(c).CallerID))
		return err
	}
}

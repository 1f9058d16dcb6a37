package utils

import (
	"keyless-stay/apperror"
	"keyless-stay/logger"

	"github.com/gofiber/fiber/v2"
)

type validatable interface {
	Validate() error
}

// ParseBody decodes the JSON body into dst and runs its validation rules
func ParseBody(c *fiber.Ctx, dst validatable) error {
	if err := c.BodyParser(dst); err != nil {
		logger.Error("Failed to parse request body", err)
		return apperror.Validation("Invalid request body")
	}
	return dst.Validate()
}

// ParseOptionalBody is ParseBody for endpoints where the body may be omitted
func ParseOptionalBody(c *fiber.Ctx, dst validatable) error {
	if len(c.Body()) == 0 {
		return dst.Validate()
	}
	return ParseBody(c, dst)
}

// ParseQuery binds the query string into dst and runs its validation rules
func ParseQuery(c *fiber.Ctx, dst validatable) error {
	if err := c.QueryParser(dst); err != nil {
		logger.Error("Failed to parse query string", err)
		return apperror.Validation("Invalid query parameters")
	}
	return dst.Validate()
}

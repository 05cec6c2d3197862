package handler

import (
	"github.com/gofiber/fiber/v2"

	"course-compass/internal/domain"
	"course-compass/internal/dto"
	"course-compass/internal/validation"
)

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// parseBody decodes the JSON body into dst and validates it.
func parseBody(c *fiber.Ctx, v *validation.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	return v.Struct(dst)
}

package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"course-compass/internal/domain"
)

const (
	ValidatedLimitKey = "validated_limit"
	ValidatedIndexKey = "validated_index"
)

// ValidateLimitQuery parses the optional ?limit= query into locals.
// A missing limit is stored as 0 and left for the service to default.
func ValidateLimitQuery(max int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
			}
			if n < 1 || n > max {
				return domain.ValidationErrors{domain.NewOutOfRangeError("limit", n, 1, max)}
			}
			limit = n
		}
		c.Locals(ValidatedLimitKey, limit)
		return c.Next()
	}
}

// ValidateIndexParam parses a non-negative integer path parameter into locals.
func ValidateIndexParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params(name)
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return domain.ValidationErrors{domain.NewInvalidFormatError(name, raw)}
		}
		c.Locals(ValidatedIndexKey, n)
		return c.Next()
	}
}

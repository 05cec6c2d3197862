package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"course-compass/internal/domain"
	"course-compass/internal/dto"
	"course-compass/internal/logger"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	accessTokenType     = "access"
)

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

// Protected requires a valid bearer access token and stores its user ID in
// the request locals under UserIDKey.
func Protected(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewUnauthorizedError("Token is empty")
		}

		claims, err := validator.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("Rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
			return domain.NewUnauthorizedError("Invalid or expired token")
		}
		if claims.TokenType != accessTokenType {
			return domain.NewUnauthorizedError("Invalid token type: expected access token")
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// UserID returns the authenticated user set by Protected, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

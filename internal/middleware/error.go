package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"course-compass/internal/domain"
	"course-compass/internal/dto"
	"course-compass/internal/logger"
)

// ErrorHandler is the centralized Fiber error handler. Every error returned
// by a handler or middleware leaves the API in the dto.ErrorResponse envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Request validation failed",
				Code:    string(domain.CodeValidation),
				Errors:  validationErrs,
			})
		}

		var malformed *domain.MalformedAIResponseError
		if errors.As(err, &malformed) {
			log.Error("AI response could not be parsed",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
				Message: "The AI service returned a response that could not be understood",
				Code:    string(domain.CodeMalformedAIResponse),
			})
		}

		var missing *domain.MissingRequiredFieldsError
		if errors.As(err, &missing) {
			log.Warn("AI response is missing required fields",
				zap.String("path", c.Path()),
				zap.Strings("fields", missing.Fields),
			)
			return c.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: missing.Error(),
				Code:    string(domain.CodeMissingRequiredFields),
				Details: map[string]interface{}{"fields": missing.Fields},
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			}
			if statusCode >= http.StatusInternalServerError {
				log.Error("Domain error occurred", fields...)
			} else {
				log.Warn("Domain error occurred", fields...)
			}

			response := dto.ErrorResponse{
				Message: domainErr.Message,
				Code:    string(domainErr.Code),
			}
			if len(domainErr.Context) > 0 {
				response.Details = domainErr.Context
			}
			return c.Status(statusCode).JSON(response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Message: fiberErr.Message,
				Code:    "HTTP_ERROR",
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Internal server error",
			Code:    string(domain.CodeInternal),
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingRequiredFields:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeConflict:
		return http.StatusConflict
	case domain.CodeLLMServiceError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

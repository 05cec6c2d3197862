package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Generation errors
	CodeLLMServiceError       ErrorCode = "LLM_SERVICE_ERROR"
	CodeMalformedAIResponse   ErrorCode = "MALFORMED_AI_RESPONSE"
	CodeMissingRequiredFields ErrorCode = "MISSING_REQUIRED_FIELDS"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a diagnostic key/value to the error and returns it.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewConflictError(message string) *DomainError {
	return NewError(CodeConflict, message, nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to get a response from the AI service", err)
}

func NewCourseNotFoundError(courseID string) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("Course not found with ID: %s", courseID), nil)
}

// MalformedAIResponseError is returned when no JSON value of the expected shape
// could be recovered from the model output. Text holds the sanitized output.
type MalformedAIResponseError struct {
	Text  string
	Cause error
}

func (e *MalformedAIResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed AI response: %v", e.Cause)
	}
	return "malformed AI response"
}

func (e *MalformedAIResponseError) Unwrap() error {
	return e.Cause
}

// MissingRequiredFieldsError is returned when a parsed course-info object lacks
// required top-level keys.
type MissingRequiredFieldsError struct {
	Fields []string
}

func (e *MissingRequiredFieldsError) Error() string {
	return fmt.Sprintf("AI response is missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ValidationError describes a single invalid request field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects all field errors for a request
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: "has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", min, max), Value: value}
}

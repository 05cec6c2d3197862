package dto

import "course-compass/internal/domain"

// SuccessResponse is the envelope for every successful API response
// @Description Standard success envelope
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for every failed API response
// @Description Standard error envelope
type ErrorResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Code    string                   `json:"code"`
	Errors  []domain.ValidationError `json:"errors,omitempty"`
	Details map[string]interface{}   `json:"details,omitempty"`
}

// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error response. Fields carries per-field
// validation messages and is omitted for non-validation errors.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

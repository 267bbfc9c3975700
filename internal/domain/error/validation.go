// Package error defines domain-specific errors for the Expense Tracker application.
package error

import (
	"sort"
	"strings"
)

// ValidationError reports field-level input violations as a field → message
// mapping. It is returned when one or more request fields fail the core's
// defensive checks, independently of the HTTP layer's binding validation.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface. Field names are listed in
// deterministic order so the message is stable.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates a ValidationError from a field → message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

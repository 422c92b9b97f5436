package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so that login failures never reveal which part was wrong.
var ErrInvalidCredentials = &AuthError{Message: "Invalid email or password"}

// AuthError is a credential failure with a deliberately generic message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ExternalAuthError is returned when an identity-provider assertion cannot
// be verified.
type ExternalAuthError struct {
	Message string
	Cause   error
}

func (e *ExternalAuthError) Error() string { return e.Message }
func (e *ExternalAuthError) Unwrap() error { return e.Cause }

// ValidationError aggregates per-field messages for client-fixable input
// problems. All offending fields are reported together, not short-circuited.
// A field-less ValidationError carries a single Message instead.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// NewValidationMessage builds a ValidationError that is not attributable to
// a single input field.
func NewValidationMessage(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Add records a message for a field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed validation.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsClientError reports whether err belongs to the 400-class taxonomy
// (validation, credential, or external-identity failures). Everything else
// is treated as an infrastructure failure.
func IsClientError(err error) bool {
	var ve *ValidationError
	var ae *AuthError
	var ee *ExternalAuthError
	return errors.As(err, &ve) || errors.As(err, &ae) || errors.As(err, &ee)
}

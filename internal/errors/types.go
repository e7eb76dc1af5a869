// Package errors provides the structured error types used across panelkit.
//
// Layout state never surfaces errors to a visitor: a broken cookie decodes to
// an empty record and a failed cookie write is logged and dropped. The types
// here exist for the edges that do fail loudly: configuration loading, CLI
// input, block registration and malformed API requests.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypePersistence ErrorType = "persistence"
	ErrorTypeInternal    ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeBlockNotFound    = "ERR_BLOCK_NOT_FOUND"
	ErrCodeBlockInvalid     = "ERR_BLOCK_INVALID"
	ErrCodePageNotFound     = "ERR_PAGE_NOT_FOUND"
	ErrCodeInvalidPanel     = "ERR_INVALID_PANEL"
	ErrCodePanelNotFound    = "ERR_PANEL_NOT_FOUND"
	ErrCodeMalformedRequest = "ERR_MALFORMED_REQUEST"
	ErrCodeInvalidLayout    = "ERR_INVALID_LAYOUT"
	ErrCodeCookieMalformed  = "ERR_COOKIE_MALFORMED"
	ErrCodeCookieTooLarge   = "ERR_COOKIE_TOO_LARGE"
	ErrCodeInternalError    = "ERR_INTERNAL"
)

// PanelkitError is a structured error type with context.
type PanelkitError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *PanelkitError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *PanelkitError) Unwrap() error {
	return e.Cause
}

// Is reports a match when type and code agree.
func (e *PanelkitError) Is(target error) bool {
	var t *PanelkitError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *PanelkitError) WithContext(key string, value interface{}) *PanelkitError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *PanelkitError {
	return &PanelkitError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string, cause error) *PanelkitError {
	return &PanelkitError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewPersistenceError creates an error for a failed layout read or write.
func NewPersistenceError(code, message string, cause error) *PanelkitError {
	return &PanelkitError{
		Type:    ErrorTypePersistence,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *PanelkitError {
	return &PanelkitError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsNotFound checks if an error reports a missing block or page.
func IsNotFound(err error) bool {
	var pe *PanelkitError
	if errors.As(err, &pe) {
		return pe.Type == ErrorTypeNotFound
	}

	return false
}

// IsPersistenceError checks if an error came from the layout cookie.
func IsPersistenceError(err error) bool {
	var pe *PanelkitError
	if errors.As(err, &pe) {
		return pe.Type == ErrorTypePersistence
	}

	return false
}

// ErrBlockNotFound creates a block not found error.
func ErrBlockNotFound(name string) *PanelkitError {
	return &PanelkitError{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeBlockNotFound,
		Message: "block not found: " + name,
	}
}

// ErrPageNotFound creates a docs page not found error.
func ErrPageNotFound(slug string) *PanelkitError {
	return &PanelkitError{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodePageNotFound,
		Message: "page not found: " + slug,
	}
}

// ErrPanelNotFound creates an error for a panel id no block declares.
func ErrPanelNotFound(id string) *PanelkitError {
	return &PanelkitError{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodePanelNotFound,
		Message: "panel not found: " + id,
	}
}

// ErrInvalidPanel creates an error for an unusable panel id.
func ErrInvalidPanel(id string) *PanelkitError {
	return NewValidationError(ErrCodeInvalidPanel, "invalid panel id: "+id)
}

// ErrMalformedRequest creates an error for an API body that failed to parse.
func ErrMalformedRequest(cause error) *PanelkitError {
	return &PanelkitError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeMalformedRequest,
		Message: "malformed request body",
		Cause:   cause,
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies configuration errors.
type ErrorType int

const (
	// NotFound indicates the configuration document does not exist.
	NotFound ErrorType = iota
	// Invalid indicates the document could not be read or decoded.
	Invalid
	// ValidationFailed indicates the document decoded but broke one or more rules.
	ValidationFailed
)

// ErrNotFound is matched by errors.Is for a ConfigError of type NotFound.
var ErrNotFound = errors.New("configuration file not found")

// ConfigError represents a fatal configuration problem.
type ConfigError struct {
	// Type is the error type.
	Type ErrorType
	// File is the configuration document path.
	File string
	// Message is the error message.
	Message string
	// Violations lists rule failures for ValidationFailed errors.
	Violations []Violation
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case len(e.Violations) > 0:
		lines := make([]string, len(e.Violations))
		for i, v := range e.Violations {
			lines[i] = v.String()
		}
		return fmt.Sprintf("configuration error in %s: %s:\n  - %s", e.File, e.Message, strings.Join(lines, "\n  - "))
	case e.Cause != nil:
		return fmt.Sprintf("configuration error in %s: %s: %v", e.File, e.Message, e.Cause)
	default:
		return fmt.Sprintf("configuration error in %s: %s", e.File, e.Message)
	}
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports NotFound errors as ErrNotFound.
func (e *ConfigError) Is(target error) bool {
	return target == ErrNotFound && e.Type == NotFound
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(typ ErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a ValidationFailed error carrying violations.
func NewValidationError(file string, violations []Violation) *ConfigError {
	return &ConfigError{
		Type:       ValidationFailed,
		File:       file,
		Message:    "validation failed",
		Violations: violations,
	}
}

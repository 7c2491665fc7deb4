package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates an operation conflicts with current state, e.g.
// posting an already-posted transaction or regressing a status.
var ErrConflict = errors.New("conflicting state")

// ErrInternal indicates an unexpected fault, typically a storage failure.
// The enclosing unit of work has been rolled back.
var ErrInternal = errors.New("internal error")

// FieldViolation tags one validation failure with the field it concerns so
// a UI can highlight multiple problems at once.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level violations. It matches
// errors.Is(err, ErrValidation).
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError from violations. It returns
// nil when the list is empty so callers can return it directly.
func NewValidationError(violations []FieldViolation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

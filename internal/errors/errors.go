package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcomes a search can end in
var (
	// ErrInvalidConfig is returned when a precondition on the search configuration fails
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound is returned when a search exhausts every pattern without a qualifying family
	ErrNotFound = errors.New("no qualifying family found")

	// ErrOverflow is returned when a value does not fit the integer width in use
	ErrOverflow = errors.New("arithmetic overflow")
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid value for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// OverflowError represents an overflow detected during a named operation
type OverflowError struct {
	Op     string
	Detail string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("overflow in %s: %s", e.Op, e.Detail)
}

func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// NewOverflowError creates a new OverflowError
func NewOverflowError(op, detail string) *OverflowError {
	return &OverflowError{Op: op, Detail: detail}
}

// NotFoundError describes an exhausted search. A zero TargetSize means any
// family size was acceptable.
type NotFoundError struct {
	TargetSize    int
	PatternsTried int
}

func (e *NotFoundError) Error() string {
	if e.TargetSize == 0 {
		return fmt.Sprintf("no family found after %d patterns", e.PatternsTried)
	}
	return fmt.Sprintf("no family of size %d found after %d patterns", e.TargetSize, e.PatternsTried)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(targetSize, patternsTried int) *NotFoundError {
	return &NotFoundError{TargetSize: targetSize, PatternsTried: patternsTried}
}

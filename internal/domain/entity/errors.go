package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the domain, repositories and use cases.
var (
	// ErrNotFound indicates that no entity exists for the requested identifier.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that a request could not be turned into an entity.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

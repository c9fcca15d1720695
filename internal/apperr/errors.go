// Package apperr defines the error taxonomy shared by the store, service and
// transport layers. Callers match with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

// NotFound reports a missing entity, e.g. NotFound("recipe", id).
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// Invalid wraps a validation failure so that it matches ErrValidation.
func Invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// Storage wraps a persistence failure with the operation that failed.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

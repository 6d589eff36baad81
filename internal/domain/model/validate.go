package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks records that fail structural validation.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New() //nolint:gochecknoglobals // validator caches struct metadata

// Validate checks a record's field ranges and uniqueness constraints.
// Failures wrap ErrInvalidInput.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// ValidateAll validates a slice of records and stops at the first failure.
func ValidateAll[T any](items []T) error {
	for i := range items {
		if err := Validate(&items[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

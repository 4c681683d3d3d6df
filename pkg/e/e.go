// Package e holds the error taxonomy shared by the store, the services and the HTTP layer.
package e

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an id or name that does not resolve to a record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a request that fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientStock marks a basket line asking for more than is available.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrConflict marks an operation the current catalog state forbids.
	ErrConflict = errors.New("conflicting state")
	// ErrPersistence marks a failed write or read against the store.
	ErrPersistence = errors.New("persistence failure")
)

// Wrap prefixes err with msg, keeping it matchable with errors.Is.
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Persistence tags a store error so that both ErrPersistence and the cause stay matchable.
func Persistence(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrPersistence, err)
}

// NotFoundf builds an ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// InvalidInputf builds an ErrInvalidInput with a formatted message.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// InsufficientStockf builds an ErrInsufficientStock with a formatted message.
func InsufficientStockf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInsufficientStock)
}

// Conflictf builds an ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

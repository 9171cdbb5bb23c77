package services

import "errors"

// Shared service errors. Entity-specific not-found errors live next to the
// service that owns the entity.
var (
	// ErrValidation marks bad or missing input, detected before any mutation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a mutation blocked by referencing rows.
	ErrConflict = errors.New("operation conflicts with existing records")

	// ErrInsufficientStock marks a quantity change that would drive stock
	// below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

package domain

import "errors"

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidation       = errors.New("validation failed")
	ErrSessionNotFound  = errors.New("session not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoEditInProgress = errors.New("no category edit in progress")
)

// Field validation errors. Each one wraps ErrValidation.
var (
	ErrCategoryRequired    = validationError("category is required")
	ErrAmountRequired      = validationError("amount is required")
	ErrInvalidAmount       = validationError("amount must be a positive number")
	ErrDescriptionRequired = validationError("description is required")
	ErrNameRequired        = validationError("name is required")
	ErrNameTooLong         = validationError("name exceeds maximum length")
)

// Validation constants
const (
	MaxCategoryNameLength = 100
)

type fieldError struct {
	msg string
}

func validationError(msg string) error {
	return &fieldError{msg: msg}
}

func (e *fieldError) Error() string {
	return e.msg
}

func (e *fieldError) Unwrap() error {
	return ErrValidation
}

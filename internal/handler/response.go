package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/labstack/echo/v4"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation = "https://budget-tracker.app/errors/validation"
	ErrorTypeRejected   = "https://budget-tracker.app/errors/rejected"
	ErrorTypeNotFound   = "https://budget-tracker.app/errors/not-found"
	ErrorTypeConflict   = "https://budget-tracker.app/errors/conflict"
	ErrorTypeInternal   = "https://budget-tracker.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// RejectionDetails is a validation problem that also carries the notification shown to the user
type RejectionDetails struct {
	ProblemDetails
	Notification domain.Notification `json:"notification"`
}

// NewRejectionError creates a response for a submission the tracker refused
func NewRejectionError(c echo.Context, err error, notification domain.Notification) error {
	var fieldErrors []ValidationError
	if fe, ok := fieldErrorFor(err); ok {
		fieldErrors = []ValidationError{fe}
	}
	return c.JSON(http.StatusBadRequest, RejectionDetails{
		ProblemDetails: ProblemDetails{
			Type:     ErrorTypeRejected,
			Title:    "Submission Rejected",
			Status:   http.StatusBadRequest,
			Detail:   notification.Message,
			Instance: c.Request().URL.Path,
			Errors:   fieldErrors,
		},
		Notification: notification,
	})
}

// fieldErrorFor maps a domain validation error to the form field it concerns
func fieldErrorFor(err error) (ValidationError, bool) {
	switch {
	case errors.Is(err, domain.ErrCategoryRequired):
		return ValidationError{Field: "categoryId", Message: "Category is required"}, true
	case errors.Is(err, domain.ErrCategoryNotFound):
		return ValidationError{Field: "categoryId", Message: "Category does not exist"}, true
	case errors.Is(err, domain.ErrAmountRequired):
		return ValidationError{Field: "amount", Message: "Amount is required"}, true
	case errors.Is(err, domain.ErrInvalidAmount):
		return ValidationError{Field: "amount", Message: "Amount must be a positive number"}, true
	case errors.Is(err, domain.ErrDescriptionRequired):
		return ValidationError{Field: "description", Message: "Description is required"}, true
	case errors.Is(err, domain.ErrNameRequired):
		return ValidationError{Field: "name", Message: "Name is required"}, true
	case errors.Is(err, domain.ErrNameTooLong):
		return ValidationError{Field: "name", Message: "Name must be 100 characters or less"}, true
	}
	return ValidationError{}, false
}

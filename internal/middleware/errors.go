package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// problemDetails represents an RFC 7807 Problem Details response
type problemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error types
const (
	errorTypeSession   = "https://budget-tracker.app/errors/session"
	errorTypeNotFound  = "https://budget-tracker.app/errors/not-found"
	errorTypeRateLimit = "https://budget-tracker.app/errors/rate-limit"
)

// sessionRequiredError creates a response for a missing or malformed session ID
func sessionRequiredError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, problemDetails{
		Type:     errorTypeSession,
		Title:    "Session Required",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// sessionNotFoundError creates a response for an unknown or expired session
func sessionNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, problemDetails{
		Type:     errorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// rateLimitError creates a too many requests response
func rateLimitError(c echo.Context, detail string) error {
	return c.JSON(http.StatusTooManyRequests, problemDetails{
		Type:     errorTypeRateLimit,
		Title:    "Rate Limit Exceeded",
		Status:   http.StatusTooManyRequests,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

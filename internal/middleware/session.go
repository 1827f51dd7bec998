package middleware

import (
	"context"
	"errors"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionHeader carries the session ID on session-scoped requests
const SessionHeader = "X-Session-ID"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SessionIDKey is the context key for the session ID
	SessionIDKey contextKey = "session_id"
	// TrackerKey is the context key for the session's tracker
	TrackerKey contextKey = "tracker"
)

// SessionProvider resolves a session ID to its tracker
type SessionProvider interface {
	Get(sessionID uuid.UUID) (*service.Tracker, error)
}

// RequireSession returns a middleware that loads the tracker named by the X-Session-ID header
func RequireSession(provider SessionProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(SessionHeader)
			if raw == "" {
				return sessionRequiredError(c, "Missing "+SessionHeader+" header")
			}

			sessionID, err := uuid.Parse(raw)
			if err != nil {
				return sessionRequiredError(c, "Invalid session ID")
			}

			tracker, err := provider.Get(sessionID)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					log.Debug().Str("session_id", sessionID.String()).Msg("Unknown or expired session")
					return sessionNotFoundError(c, "Session not found or expired")
				}
				return err
			}

			ctx := context.WithValue(c.Request().Context(), SessionIDKey, sessionID)
			ctx = context.WithValue(ctx, TrackerKey, tracker)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetSessionID extracts the session ID from the echo context
func GetSessionID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(SessionIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetTracker extracts the session's tracker from the echo context
func GetTracker(c echo.Context) *service.Tracker {
	if tracker, ok := c.Request().Context().Value(TrackerKey).(*service.Tracker); ok {
		return tracker
	}
	return nil
}

// WithTracker returns a copy of ctx carrying the tracker and its session ID
func WithTracker(ctx context.Context, tracker *service.Tracker) context.Context {
	ctx = context.WithValue(ctx, SessionIDKey, tracker.SessionID())
	return context.WithValue(ctx, TrackerKey, tracker)
}

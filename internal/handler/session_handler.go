package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/middleware"
	"github.com/dafibh/fortuna/budget-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionHandler handles session lifecycle HTTP requests
type SessionHandler struct {
	sessions *service.SessionManager
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *service.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SessionResponse represents a newly created session
type SessionResponse struct {
	SessionID string          `json:"sessionId"`
	Summary   SummaryResponse `json:"summary"`
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c echo.Context) error {
	tracker := h.sessions.Create()

	return c.JSON(http.StatusCreated, SessionResponse{
		SessionID: tracker.SessionID().String(),
		Summary:   toSummaryResponse(tracker.Summary()),
	})
}

// EndSession handles DELETE /api/v1/sessions
func (h *SessionHandler) EndSession(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	if err := h.sessions.End(sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return NewNotFoundError(c, "Session not found")
		}
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("Failed to end session")
		return NewInternalError(c, "Failed to end session")
	}

	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/service"
	"github.com/dafibh/fortuna/budget-tracker/internal/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessionLookup is a test double for session lookup
type stubSessionLookup struct {
	known uuid.UUID
}

func (s *stubSessionLookup) Get(sessionID uuid.UUID) (*service.Tracker, error) {
	if sessionID != s.known {
		return nil, domain.ErrSessionNotFound
	}
	return service.NewSeededTracker(sessionID), nil
}

var testAllowedOrigins = []string{"http://localhost:3000", "https://budget-tracker.app"}

func TestWebSocketHandler_HandleWS_Rejections(t *testing.T) {
	lookup := &stubSessionLookup{known: uuid.New()}

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"missing session", "", http.StatusBadRequest},
		{"malformed session", "?session=abc", http.StatusBadRequest},
		{"unknown session", "?session=" + uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h := NewWebSocketHandler(websocket.NewHub(), lookup, testAllowedOrigins)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/ws"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.HandleWS(c)

			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
		})
	}
}

func TestWebSocketHandler_HandleWS_KnownSession_NoUpgrade(t *testing.T) {
	e := echo.New()
	sessionID := uuid.New()
	h := NewWebSocketHandler(websocket.NewHub(), &stubSessionLookup{known: sessionID}, testAllowedOrigins)

	// Known session but not a WebSocket upgrade request
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws?session="+sessionID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.HandleWS(c)

	// gorilla/websocket fails the upgrade, so the session checks passed first
	assert.Error(t, err)
	_, isHTTPError := err.(*echo.HTTPError)
	assert.False(t, isHTTPError)
}

func TestWebSocketHandler_CheckOrigin(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), &stubSessionLookup{}, testAllowedOrigins)

	tests := []struct {
		name     string
		origin   string
		expected bool
	}{
		{"allowed origin", "http://localhost:3000", true},
		{"allowed origin https", "https://budget-tracker.app", true},
		{"disallowed origin", "https://evil.com", false},
		{"empty origin (same-origin)", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			result := h.checkOrigin(req)
			assert.Equal(t, tt.expected, result)
		})
	}
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/budget-tracker/internal/middleware"
	"github.com/dafibh/fortuna/budget-tracker/internal/service"
	"github.com/dafibh/fortuna/budget-tracker/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, perMinute, burst int) (*echo.Echo, *service.SessionManager) {
	t.Helper()

	hub := websocket.NewHub()
	sessions := service.NewSessionManager(zerolog.Nop(), service.SessionManagerConfig{})
	sessions.SetEventPublisher(hub)

	rateLimiter := middleware.NewRateLimiterWithConfig(perMinute, burst)
	t.Cleanup(rateLimiter.Stop)

	e := echo.New()
	RegisterRoutes(e, sessions, rateLimiter, Handlers{
		Session:   NewSessionHandler(sessions),
		Summary:   NewSummaryHandler(),
		Category:  NewCategoryHandler(),
		Expense:   NewExpenseHandler(),
		WebSocket: NewWebSocketHandler(hub, sessions, nil),
	})
	return e, sessions
}

func serve(e *echo.Echo, method, target, sessionID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_SessionLifecycle(t *testing.T) {
	e, sessions := newTestServer(t, 600, 100)

	rec := serve(e, http.MethodPost, "/api/v1/sessions", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[SessionResponse](t, rec)
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, "10100.00", created.Summary.TotalSpent)
	assert.Equal(t, 1, sessions.Count())

	rec = serve(e, http.MethodGet, "/api/v1/summary", created.SessionID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodDelete, "/api/v1/sessions", created.SessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, sessions.Count())

	rec = serve(e, http.MethodGet, "/api/v1/summary", created.SessionID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_RequireSession(t *testing.T) {
	e, _ := newTestServer(t, 600, 100)

	rec := serve(e, http.MethodGet, "/api/v1/categories", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodGet, "/api/v1/expenses", "not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_SessionsAreIsolated(t *testing.T) {
	e, _ := newTestServer(t, 600, 100)

	first := decodeJSON[SessionResponse](t, serve(e, http.MethodPost, "/api/v1/sessions", "", "")).SessionID
	second := decodeJSON[SessionResponse](t, serve(e, http.MethodPost, "/api/v1/sessions", "", "")).SessionID

	rec := serve(e, http.MethodPost, "/api/v1/expenses", first, `{"categoryId": "6", "amount": "999", "description": "Куртка"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	firstSummary := decodeJSON[SummaryResponse](t, serve(e, http.MethodGet, "/api/v1/summary", first, ""))
	secondSummary := decodeJSON[SummaryResponse](t, serve(e, http.MethodGet, "/api/v1/summary", second, ""))
	assert.Equal(t, "11099.00", firstSummary.TotalSpent)
	assert.Equal(t, "10100.00", secondSummary.TotalSpent)
}

func TestRoutes_CategoryEditPaths(t *testing.T) {
	e, _ := newTestServer(t, 600, 100)
	sessionID := decodeJSON[SessionResponse](t, serve(e, http.MethodPost, "/api/v1/sessions", "", "")).SessionID

	rec := serve(e, http.MethodPost, "/api/v1/categories/5/edit", sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodPatch, "/api/v1/categories/edit", sessionID, `{"name": "ЖКХ", "limit": "-100"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0.00", decodeJSON[CategoryEditResponse](t, rec).Category.Limit)

	rec = serve(e, http.MethodPost, "/api/v1/categories/edit/confirm", sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ЖКХ", decodeJSON[CategoryMutationResponse](t, rec).Category.Name)

	rec = serve(e, http.MethodDelete, "/api/v1/categories/5", sessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRoutes_RateLimited(t *testing.T) {
	e, _ := newTestServer(t, 60, 2)
	sessionID := decodeJSON[SessionResponse](t, serve(e, http.MethodPost, "/api/v1/sessions", "", "")).SessionID

	for i := 0; i < 2; i++ {
		rec := serve(e, http.MethodGet, "/api/v1/summary", sessionID, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := serve(e, http.MethodGet, "/api/v1/summary", sessionID, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionProvider struct {
	trackers map[uuid.UUID]*service.Tracker
}

func (p *stubSessionProvider) Get(sessionID uuid.UUID) (*service.Tracker, error) {
	tracker, ok := p.trackers[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return tracker, nil
}

func newSessionRequest(t *testing.T, sessionHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	if sessionHeader != "" {
		req.Header.Set(SessionHeader, sessionHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireSession_LoadsTracker(t *testing.T) {
	sessionID := uuid.New()
	tracker := service.NewSeededTracker(sessionID)
	provider := &stubSessionProvider{trackers: map[uuid.UUID]*service.Tracker{sessionID: tracker}}

	c, rec := newSessionRequest(t, sessionID.String())

	var gotTracker *service.Tracker
	var gotSessionID uuid.UUID
	handler := func(c echo.Context) error {
		gotTracker = GetTracker(c)
		gotSessionID = GetSessionID(c)
		return c.NoContent(http.StatusOK)
	}

	err := RequireSession(provider)(handler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, tracker, gotTracker)
	assert.Equal(t, sessionID, gotSessionID)
}

func TestRequireSession_MissingHeader(t *testing.T) {
	provider := &stubSessionProvider{}
	c, rec := newSessionRequest(t, "")

	handler := func(c echo.Context) error {
		t.Fatal("handler should not be called")
		return nil
	}

	err := RequireSession(provider)(handler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), SessionHeader)
}

func TestRequireSession_MalformedID(t *testing.T) {
	provider := &stubSessionProvider{}
	c, rec := newSessionRequest(t, "not-a-uuid")

	handler := func(c echo.Context) error {
		t.Fatal("handler should not be called")
		return nil
	}

	err := RequireSession(provider)(handler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireSession_UnknownSession(t *testing.T) {
	provider := &stubSessionProvider{trackers: map[uuid.UUID]*service.Tracker{}}
	c, rec := newSessionRequest(t, uuid.New().String())

	handler := func(c echo.Context) error {
		t.Fatal("handler should not be called")
		return nil
	}

	err := RequireSession(provider)(handler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Session not found")
}

func TestGetters_WithoutSession(t *testing.T) {
	c, _ := newSessionRequest(t, "")

	assert.Nil(t, GetTracker(c))
	assert.Equal(t, uuid.Nil, GetSessionID(c))
}

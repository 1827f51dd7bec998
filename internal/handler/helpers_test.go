package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/budget-tracker/internal/middleware"
	"github.com/dafibh/fortuna/budget-tracker/internal/service"
	"github.com/dafibh/fortuna/budget-tracker/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// newSeededTracker returns a seeded tracker that records its events
func newSeededTracker() (*service.Tracker, *testutil.RecordingPublisher) {
	tracker := service.NewSeededTracker(uuid.New())
	publisher := testutil.NewRecordingPublisher()
	tracker.SetEventPublisher(publisher)
	return tracker, publisher
}

// newTrackerContext builds an echo context that already passed the session middleware
func newTrackerContext(method, target, body string, tracker *service.Tracker) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if tracker != nil {
		req = req.WithContext(middleware.WithTracker(req.Context(), tracker))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/testutil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(ttl time.Duration) *SessionManager {
	return NewSessionManager(zerolog.Nop(), SessionManagerConfig{TTL: ttl, SweepInterval: time.Hour})
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	manager := newTestSessionManager(time.Minute)

	tracker := manager.Create()
	require.NotNil(t, tracker)
	assert.Equal(t, 1, manager.Count())

	got, err := manager.Get(tracker.SessionID())
	require.NoError(t, err)
	assert.Same(t, tracker, got)

	// Every session starts from the sample data
	assert.Len(t, got.Categories(), 6)
	assert.Equal(t, 5, got.ExpenseCount())
}

func TestSessionManager_SessionsAreIsolated(t *testing.T) {
	manager := newTestSessionManager(time.Minute)

	first := manager.Create()
	second := manager.Create()
	require.NotEqual(t, first.SessionID(), second.SessionID())

	_, err := first.AddExpense(domain.ExpenseDraft{CategoryID: "1", Amount: "10", Description: "x"})
	require.NoError(t, err)

	assert.Equal(t, 6, first.ExpenseCount())
	assert.Equal(t, 5, second.ExpenseCount())
}

func TestSessionManager_GetUnknown(t *testing.T) {
	manager := newTestSessionManager(time.Minute)

	_, err := manager.Get(uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionManager_End(t *testing.T) {
	manager := newTestSessionManager(time.Minute)

	var ended []uuid.UUID
	manager.OnSessionEnd(func(id uuid.UUID) { ended = append(ended, id) })

	tracker := manager.Create()
	require.NoError(t, manager.End(tracker.SessionID()))

	_, err := manager.Get(tracker.SessionID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, []uuid.UUID{tracker.SessionID()}, ended)

	assert.ErrorIs(t, manager.End(tracker.SessionID()), domain.ErrSessionNotFound)
}

func TestSessionManager_SweepExpiresIdleSessions(t *testing.T) {
	manager := newTestSessionManager(10 * time.Minute)

	now := time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }

	idle := manager.Create()
	active := manager.Create()

	now = now.Add(8 * time.Minute)
	_, err := manager.Get(active.SessionID())
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	expired := manager.sweep()

	assert.Equal(t, 1, expired)
	_, err = manager.Get(idle.SessionID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = manager.Get(active.SessionID())
	assert.NoError(t, err)
}

func TestSessionManager_TrackersShareEventPublisher(t *testing.T) {
	manager := newTestSessionManager(time.Minute)
	publisher := testutil.NewRecordingPublisher()
	manager.SetEventPublisher(publisher)

	tracker := manager.Create()
	_, err := tracker.AddExpense(domain.ExpenseDraft{CategoryID: "2", Amount: "100", Description: "Такси"})
	require.NoError(t, err)

	require.NotEmpty(t, publisher.Events)
	assert.Equal(t, tracker.SessionID(), publisher.Events[0].SessionID)
}

func TestSessionManager_StartStop(t *testing.T) {
	manager := NewSessionManager(zerolog.Nop(), SessionManagerConfig{TTL: time.Millisecond, SweepInterval: 5 * time.Millisecond})

	var mu sync.Mutex
	ended := 0
	manager.OnSessionEnd(func(uuid.UUID) {
		mu.Lock()
		ended++
		mu.Unlock()
	})

	manager.Create()
	manager.Start(context.Background())

	assert.Eventually(t, func() bool {
		return manager.Count() == 0
	}, time.Second, 5*time.Millisecond)

	manager.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, ended)
}

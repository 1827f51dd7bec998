package service

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultSessionTTL is how long an idle session is kept
	DefaultSessionTTL = 30 * time.Minute
	// DefaultSweepInterval is how often idle sessions are looked for
	DefaultSweepInterval = time.Minute
)

// SessionManagerConfig holds configuration for the session manager
type SessionManagerConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// SessionManager owns every live Tracker, keyed by session ID.
// Sessions idle for longer than the TTL are swept by a background loop.
type SessionManager struct {
	sessions       map[uuid.UUID]*sessionEntry
	mu             sync.Mutex
	ttl            time.Duration
	sweepInterval  time.Duration
	eventPublisher websocket.EventPublisher
	onEnd          func(sessionID uuid.UUID)
	logger         zerolog.Logger
	now            func() time.Time

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

type sessionEntry struct {
	tracker  *Tracker
	lastSeen time.Time
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(logger zerolog.Logger, config SessionManagerConfig) *SessionManager {
	if config.TTL <= 0 {
		config.TTL = DefaultSessionTTL
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = DefaultSweepInterval
	}

	return &SessionManager{
		sessions:      make(map[uuid.UUID]*sessionEntry),
		ttl:           config.TTL,
		sweepInterval: config.SweepInterval,
		logger:        logger.With().Str("component", "session_manager").Logger(),
		now:           time.Now,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// SetEventPublisher sets the publisher handed to every new tracker
func (m *SessionManager) SetEventPublisher(publisher websocket.EventPublisher) {
	m.eventPublisher = publisher
}

// OnSessionEnd registers a callback run after a session is ended or expires
func (m *SessionManager) OnSessionEnd(fn func(sessionID uuid.UUID)) {
	m.onEnd = fn
}

// Create starts a new session seeded with the sample data
func (m *SessionManager) Create() *Tracker {
	sessionID := uuid.New()
	tracker := NewSeededTracker(sessionID)
	if m.eventPublisher != nil {
		tracker.SetEventPublisher(m.eventPublisher)
	}

	m.mu.Lock()
	m.sessions[sessionID] = &sessionEntry{tracker: tracker, lastSeen: m.now()}
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info().
		Str("session_id", sessionID.String()).
		Int("active_sessions", count).
		Msg("Session created")
	return tracker
}

// Get returns the tracker of a live session and marks the session as active
func (m *SessionManager) Get(sessionID uuid.UUID) (*Tracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	entry.lastSeen = m.now()
	return entry.tracker, nil
}

// End removes a session and drops its state
func (m *SessionManager) End(sessionID uuid.UUID) error {
	m.mu.Lock()
	_, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}

	m.logger.Info().Str("session_id", sessionID.String()).Msg("Session ended")
	m.ended(sessionID)
	return nil
}

// Count returns the number of live sessions
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Start begins the background sweep of idle sessions
func (m *SessionManager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	m.logger.Info().
		Dur("ttl", m.ttl).
		Dur("sweep_interval", m.sweepInterval).
		Msg("Starting session sweeper")

	go m.run(ctx)
}

// Stop gracefully stops the sweeper
func (m *SessionManager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	close(m.stopCh)
	<-m.doneCh
	m.logger.Info().Msg("Session sweeper stopped")
}

func (m *SessionManager) run(ctx context.Context) {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.setStopped()
			return
		case <-m.stopCh:
			m.setStopped()
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *SessionManager) setStopped() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// sweep ends every session idle for longer than the TTL and returns how many were ended
func (m *SessionManager) sweep() int {
	now := m.now()

	m.mu.Lock()
	var expired []uuid.UUID
	for id, entry := range m.sessions {
		if now.Sub(entry.lastSeen) > m.ttl {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	for _, id := range expired {
		m.logger.Debug().Str("session_id", id.String()).Msg("Expired idle session")
		m.ended(id)
	}

	if len(expired) > 0 {
		m.logger.Info().
			Int("expired", len(expired)).
			Int("active_sessions", remaining).
			Msg("Swept idle sessions")
	}
	return len(expired)
}

func (m *SessionManager) ended(sessionID uuid.UUID) {
	if m.onEnd != nil {
		m.onEnd(sessionID)
	}
}

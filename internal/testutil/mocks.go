package testutil

import (
	"sync"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordingPublisher is a websocket.EventPublisher that keeps every published event
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is an event together with the session it was published to
type PublishedEvent struct {
	SessionID uuid.UUID
	Event     websocket.Event
}

// NewRecordingPublisher creates a new RecordingPublisher
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// Publish records the event
func (p *RecordingPublisher) Publish(sessionID uuid.UUID, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{SessionID: sessionID, Event: event})
}

// Notifications returns the payloads of all notification.created events, oldest first
func (p *RecordingPublisher) Notifications() []domain.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()

	var result []domain.Notification
	for _, e := range p.Events {
		if n, ok := e.Event.Payload.(domain.Notification); ok {
			result = append(result, n)
		}
	}
	return result
}

// LastNotification returns the most recent notification, or false when none was published
func (p *RecordingPublisher) LastNotification() (domain.Notification, bool) {
	notifications := p.Notifications()
	if len(notifications) == 0 {
		return domain.Notification{}, false
	}
	return notifications[len(notifications)-1], true
}

// EventTypes returns the type of every recorded event, oldest first
func (p *RecordingPublisher) EventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Event.Type
	}
	return types
}

// Reset drops all recorded events
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = nil
}

var _ websocket.EventPublisher = (*RecordingPublisher)(nil)

// Category builds a category fixture
func Category(id, name string, limit int64) *domain.Category {
	return &domain.Category{
		ID:    id,
		Name:  name,
		Icon:  "Tag",
		Color: "#000000",
		Limit: decimal.NewFromInt(limit),
	}
}

// Expense builds an expense fixture
func Expense(id, categoryID string, amount int64) *domain.Expense {
	return &domain.Expense{
		ID:          id,
		CategoryID:  categoryID,
		Amount:      decimal.NewFromInt(amount),
		Description: "expense " + id,
	}
}

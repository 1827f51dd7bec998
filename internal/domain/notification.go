package domain

import "time"

type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a leveled user-facing message
type Notification struct {
	Level      NotificationLevel `json:"level"`
	Message    string            `json:"message"`
	CategoryID string            `json:"categoryId,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewNotification creates a notification stamped with the current UTC time
func NewNotification(level NotificationLevel, message string) Notification {
	return Notification{
		Level:     level,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

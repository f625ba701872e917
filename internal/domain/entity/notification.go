package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is the severity of a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// IsValid checks if the NotificationType is a known value.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	default:
		return false
	}
}

// Notification is a user-facing feedback entry produced by store mutations.
type Notification struct {
	ID        uuid.UUID        `json:"id"`         // The Global Unique Identifier (GUID) for the notification.
	Message   string           `json:"message"`    // Human readable message.
	Type      NotificationType `json:"type"`       // Severity.
	CreatedAt time.Time        `json:"created_at"` // Timestamp of when the notification was emitted.
	Read      bool             `json:"read"`       // Whether the operator has seen it.
}

// NewNotification builds an unread notification stamped at now.
func NewNotification(message string, typ NotificationType, now time.Time) *Notification {
	if !typ.IsValid() {
		typ = NotificationInfo
	}

	return &Notification{
		ID:        uuid.New(),
		Message:   message,
		Type:      typ,
		CreatedAt: now,
	}
}

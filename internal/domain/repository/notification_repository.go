package repository

import (
	"context"
	"errors"

	"novasalud/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for the bounded notification log.
type NotificationRepository interface {
	// AppendNotification adds a notification at the head of the log, evicting the oldest beyond capacity.
	AppendNotification(ctx context.Context, notification *entity.Notification) error

	// ListNotifications retrieves the log, newest first.
	ListNotifications(ctx context.Context) ([]*entity.Notification, error)

	// MarkNotificationAsRead flags one notification as read.
	MarkNotificationAsRead(ctx context.Context, id uuid.UUID) error

	// ClearNotifications empties the log.
	ClearNotifications(ctx context.Context) error
}

package usecase

import (
	"context"

	"novasalud/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase defines the interface for the operator notification log
type NotificationUsecase interface {
	// AddNotification appends a notification to the head of the log
	AddNotification(ctx context.Context, message string, typ entity.NotificationType) (*entity.Notification, error)

	// ListNotifications retrieves the log, newest first
	ListNotifications(ctx context.Context) ([]*entity.Notification, error)

	// UnreadCount returns the number of unread notifications
	UnreadCount(ctx context.Context) (int, error)

	// MarkNotificationAsRead flags a notification as read. Marking twice is a no-op.
	MarkNotificationAsRead(ctx context.Context, id uuid.UUID) error

	// ClearAllNotifications empties the log
	ClearAllNotifications(ctx context.Context) error
}

package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"novasalud/internal/domain/entity"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/domain/repository"
	"novasalud/internal/errors"
	"novasalud/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
	now              func() time.Time
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	Logger           *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		logger:           params.Logger,
		now:              time.Now,
	}
}

// AddNotification appends a notification to the head of the log.
// Unknown types fall back to info.
func (s *notificationService) AddNotification(ctx context.Context, message string, typ entity.NotificationType) (*entity.Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, validationError("notification message is required")
	}

	notification := entity.NewNotification(message, typ, s.now())
	if err := s.notificationRepo.AppendNotification(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to append notification")
	}

	return notification, nil
}

// ListNotifications retrieves the log, newest first
func (s *notificationService) ListNotifications(ctx context.Context) ([]*entity.Notification, error) {
	notifications, err := s.notificationRepo.ListNotifications(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// UnreadCount returns the number of unread notifications
func (s *notificationService) UnreadCount(ctx context.Context) (int, error) {
	notifications, err := s.ListNotifications(ctx)
	if err != nil {
		return 0, err
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	return unread, nil
}

// MarkNotificationAsRead flags a notification as read. Marking twice is a no-op.
func (s *notificationService) MarkNotificationAsRead(ctx context.Context, id uuid.UUID) error {
	err := s.notificationRepo.MarkNotificationAsRead(ctx, id)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return domainerrors.ErrNotificationNotFound.WithDetails(id.String())
	}
	if err != nil {
		return errors.Wrap(err, "failed to mark notification as read")
	}

	return nil
}

// ClearAllNotifications empties the log
func (s *notificationService) ClearAllNotifications(ctx context.Context) error {
	if err := s.notificationRepo.ClearNotifications(ctx); err != nil {
		return errors.Wrap(err, "failed to clear notifications")
	}
	s.logger.DebugContext(ctx, "Notifications cleared")

	return nil
}

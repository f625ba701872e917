// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "novasalud/internal/delivery/context"
	"novasalud/internal/domain/entity"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/domain/repository"
	"novasalud/internal/errors"
)

// notifier appends operator feedback to the notification log.
// Success messages are written inside the caller's unit of work; failures get their own.
type notifier struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

func newNotifier(txManager repository.TransactionManager, logger *slog.Logger) *notifier {
	return &notifier{txManager: txManager, logger: logger, now: time.Now}
}

func (n *notifier) record(ctx context.Context, repo repository.NotificationRepository, typ entity.NotificationType, format string, args ...any) error {
	notification := entity.NewNotification(fmt.Sprintf(format, args...), typ, n.now())
	if err := repo.AppendNotification(ctx, notification); err != nil {
		return errors.Wrap(err, "failed to append notification")
	}

	return nil
}

// fail records an error notification and returns err unchanged.
func (n *notifier) fail(ctx context.Context, err error, format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	logger := deliverycontext.GetLoggerOrDefault(ctx, n.logger)
	logger.WarnContext(ctx, "Store operation failed", slog.String("notification", message), slog.Any("error", err))

	notifyErr := n.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return n.record(ctx, repoFactory.NewNotificationRepository(), entity.NotificationError, "%s", message)
	})
	if notifyErr != nil {
		logger.ErrorContext(ctx, "Failed to record failure notification", slog.Any("error", notifyErr))
	}

	return err
}

// failureReason renders err for a notification message.
func failureReason(err error) string {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		if appErr.Details() != "" {
			return appErr.Details()
		}

		return appErr.Message()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "request cancelled"
	}

	return "internal error"
}

func validationError(format string, args ...any) error {
	return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf(format, args...))
}

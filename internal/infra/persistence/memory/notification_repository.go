package memory

import (
	"context"

	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"

	"github.com/google/uuid"
)

type notificationRepository struct {
	view view
}

// NewNotificationRepository creates a notification repository reading committed state.
func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{view: storeView{store: store}}
}

func (r *notificationRepository) AppendNotification(ctx context.Context, notification *entity.Notification) error {
	return r.view.write(ctx, func(st *state) error {
		copied := *notification
		st.notifications.push(&copied)

		return nil
	})
}

func (r *notificationRepository) ListNotifications(ctx context.Context) ([]*entity.Notification, error) {
	var notifications []*entity.Notification
	err := r.view.read(ctx, func(st *state) error {
		items := st.notifications.items()
		notifications = make([]*entity.Notification, 0, len(items))
		for _, n := range items {
			copied := *n
			notifications = append(notifications, &copied)
		}

		return nil
	})

	return notifications, err
}

func (r *notificationRepository) MarkNotificationAsRead(ctx context.Context, id uuid.UUID) error {
	return r.view.write(ctx, func(st *state) error {
		n := st.notifications.find(id)
		if n == nil {
			return repository.ErrNotificationNotFound
		}
		n.Read = true

		return nil
	})
}

func (r *notificationRepository) ClearNotifications(ctx context.Context) error {
	return r.view.write(ctx, func(st *state) error {
		st.notifications.clear()

		return nil
	})
}

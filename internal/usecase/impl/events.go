package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"novasalud/config"
	deliverycontext "novasalud/internal/delivery/context"
	"novasalud/internal/domain/constants"
	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/service"

	"go.uber.org/fx"
)

// eventDispatcher publishes committed store mutations and low stock alerts.
// Failures are logged and never surface to the caller.
type eventDispatcher struct {
	publisher     service.EventPublisher
	push          service.PushService
	lowStockTopic string
	logger        *slog.Logger
	now           func() time.Time
}

// EventDispatcherParams holds dependencies for the event dispatcher, injected by Fx.
type EventDispatcherParams struct {
	fx.In

	Publisher service.EventPublisher
	Push      service.PushService
	Config    *config.Config
	Logger    *slog.Logger
}

func newEventDispatcher(params EventDispatcherParams) *eventDispatcher {
	topic := constants.LowStockTopic
	if params.Config != nil && params.Config.Firebase != nil && params.Config.Firebase.LowStockTopic != "" {
		topic = params.Config.Firebase.LowStockTopic
	}

	return &eventDispatcher{
		publisher:     params.Publisher,
		push:          params.Push,
		lowStockTopic: topic,
		logger:        params.Logger,
		now:           time.Now,
	}
}

func (d *eventDispatcher) publish(ctx context.Context, typ service.StoreEventType, entityID string, attributes map[string]string) {
	event := &service.StoreEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       typ,
		EntityID:   entityID,
		OccurredAt: d.now(),
		Attributes: attributes,
	}

	if err := d.publisher.PublishStoreEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, d.logger).WarnContext(ctx, "Failed to publish store event",
			slog.String("type", string(typ)),
			slog.String("entity_id", entityID),
			slog.Any("error", err),
		)
	}
}

func (d *eventDispatcher) lowStock(ctx context.Context, products []*entity.Product) {
	for _, p := range products {
		attributes := map[string]string{
			"name":          p.Name,
			"stock":         strconv.Itoa(p.Stock),
			"reorder_level": strconv.Itoa(p.ReorderLevel),
		}
		d.publish(ctx, service.EventStockLow, p.ID, attributes)

		data := map[string]string{"product_id": p.ID, "stock": attributes["stock"]}
		body := fmt.Sprintf("%s has %d units left (reorder level %d)", p.Name, p.Stock, p.ReorderLevel)
		if err := d.push.SendTopicNotification(ctx, d.lowStockTopic, "Low stock", body, data); err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, d.logger).WarnContext(ctx, "Failed to send low stock alert",
				slog.String("product_id", p.ID),
				slog.Any("error", err),
			)
		}
	}
}

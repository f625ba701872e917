package service

import (
	"context"
)

// PushService defines the interface for push alert delivery
type PushService interface {
	// SendTopicNotification sends a push notification to every device subscribed to topic
	SendTopicNotification(ctx context.Context, topic, title, body string, data map[string]string) error
}

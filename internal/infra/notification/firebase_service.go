// Package notification delivers operator push alerts through Firebase Cloud Messaging.
package notification

import (
	"context"
	"log/slog"

	"novasalud/internal/domain/service"
	"novasalud/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase push service instance
func NewFirebaseService(ctx context.Context, projectID, credentialsPath string) (service.PushService, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	var appConfig *firebase.Config
	if projectID != "" {
		appConfig = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{
		client: client,
	}, nil
}

// SendTopicNotification sends a push notification to every device subscribed to topic
func (s *firebaseService) SendTopicNotification(ctx context.Context, topic, title, body string, data map[string]string) error {
	if _, err := s.client.Send(ctx, buildTopicMessage(topic, title, body, data)); err != nil {
		return errors.Wrapf(err, "failed to send notification to topic %q", topic)
	}

	return nil
}

func buildTopicMessage(topic, title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
}

type noopPushService struct {
	logger *slog.Logger
}

// NewNoopPushService returns a PushService that only logs alerts. Used when Firebase is not configured.
func NewNoopPushService(logger *slog.Logger) service.PushService {
	return &noopPushService{logger: logger}
}

func (s *noopPushService) SendTopicNotification(ctx context.Context, topic, title, _ string, _ map[string]string) error {
	s.logger.DebugContext(ctx, "Push disabled, skipping alert",
		slog.String("topic", topic),
		slog.String("title", title),
	)

	return nil
}

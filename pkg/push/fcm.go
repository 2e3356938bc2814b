package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/meeplemeet/meeplemeet-api/pkg/config"
)

// Message is a device push addressed to a single registration token.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers push messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSender sends pushes through Firebase Cloud Messaging.
type FCMSender struct {
	client messagingClient
	logger *zap.Logger
}

// New returns an FCM sender when push is enabled, otherwise a sender that only logs.
func New(ctx context.Context, cfg config.PushConfig, logger *zap.Logger) (Sender, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return NopSender{logger: logger}, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialise firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialise messaging client: %w", err)
	}
	return &FCMSender{client: client, logger: logger}, nil
}

// Send delivers msg. Messages without a token are skipped.
func (s *FCMSender) Send(ctx context.Context, msg Message) error {
	if msg.Token == "" {
		return nil
	}
	id, err := s.client.Send(ctx, buildMessage(msg))
	if err != nil {
		return fmt.Errorf("send fcm message: %w", err)
	}
	s.logger.Debug("push delivered", zap.String("message_id", id))
	return nil
}

func buildMessage(msg Message) *messaging.Message {
	return &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
}

// NopSender discards pushes.
type NopSender struct {
	logger *zap.Logger
}

// Send logs and drops the message.
func (s NopSender) Send(_ context.Context, msg Message) error {
	if s.logger != nil {
		s.logger.Debug("push disabled, dropping message", zap.String("title", msg.Title))
	}
	return nil
}

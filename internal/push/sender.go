package push

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// ErrUnregistered marks a token the provider no longer recognizes. Callers
// drop such tokens so they are not tried again.
var ErrUnregistered = errors.New("device token is no longer registered")

// Message is one push to one device token.
type Message struct {
	Token          string
	Title          string
	Body           string
	ImageURL       string
	ActionURL      string
	NotificationID string
}

type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

type fcmSender struct {
	client *messaging.Client
}

func NewFCMSender(client *messaging.Client) Sender {
	return &fcmSender{client: client}
}

func (s *fcmSender) Send(ctx context.Context, msg *Message) error {
	data := map[string]string{
		"notification_id": msg.NotificationID,
	}
	if msg.ActionURL != "" {
		data["action_url"] = msg.ActionURL
	}
	if msg.ImageURL != "" {
		data["image"] = msg.ImageURL
	}

	fcmMsg := &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Icon:  "/favicon.ico",
				Badge: "/favicon.ico",
				Tag:   "nextalk-notification",
			},
		},
	}

	_, err := s.client.Send(ctx, fcmMsg)
	if err != nil && messaging.IsUnregistered(err) {
		return fmt.Errorf("%w: %v", ErrUnregistered, err)
	}
	return err
}

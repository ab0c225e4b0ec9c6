package config

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// NewMessagingClient builds the FCM client once at startup; everything that
// sends pushes receives it as a dependency.
func NewMessagingClient(ctx context.Context, cfg *Config) (*messaging.Client, error) {
	opt := option.WithCredentialsFile(cfg.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	return client, nil
}

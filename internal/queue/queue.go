package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypePushDeliver = "push:deliver"

// PushPayload carries everything the delivery worker needs; the worker shares
// no other state with the API process.
type PushPayload struct {
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	ImageURL       string    `json:"image_url,omitempty"`
	ActionURL      string    `json:"action_url,omitempty"`
}

func NewPushTask(payload PushPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push payload: %w", err)
	}
	return asynq.NewTask(TypePushDeliver, data), nil
}

type Enqueuer interface {
	EnqueuePush(ctx context.Context, payload PushPayload) error
}

type Client struct {
	client *asynq.Client
}

func NewClient(redisURL string) (*Client, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, err
	}
	return &Client{client: asynq.NewClient(opt)}, nil
}

// EnqueuePush queues one task without retries; a failed delivery attempt
// is logged by the worker and abandoned.
func (c *Client) EnqueuePush(ctx context.Context, payload PushPayload) error {
	task, err := NewPushTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.MaxRetry(0))
	return err
}

func (c *Client) Close() error {
	return c.client.Close()
}

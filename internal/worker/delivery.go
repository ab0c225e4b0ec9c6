package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"nextalk-server/internal/domain"
	"nextalk-server/internal/push"
	"nextalk-server/internal/queue"
	"nextalk-server/internal/repository"
)

// DeliveryHandler turns queued broadcast tasks into provider pushes. Each
// task is handled on its own; ordering and delivery guarantees beyond a
// single attempt belong to the push provider.
type DeliveryHandler struct {
	tokenRepo repository.DeviceTokenRepository
	sender    push.Sender
}

func NewDeliveryHandler(tokenRepo repository.DeviceTokenRepository, sender push.Sender) *DeliveryHandler {
	return &DeliveryHandler{
		tokenRepo: tokenRepo,
		sender:    sender,
	}
}

func (h *DeliveryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.PushPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid push payload: %v: %w", err, asynq.SkipRetry)
	}

	title := payload.Title
	if title == "" {
		title = domain.FallbackTitle
	}
	body := payload.Body
	if body == "" {
		body = domain.FallbackBody
	}

	tokens, err := h.tokenRepo.ListByUser(ctx, payload.UserID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		log.Printf("No device tokens for user %s, dropping notification %s", payload.UserID, payload.NotificationID)
		return nil
	}

	for _, deviceToken := range tokens {
		err := h.sender.Send(ctx, &push.Message{
			Token:          deviceToken.Token,
			Title:          title,
			Body:           body,
			ImageURL:       payload.ImageURL,
			ActionURL:      payload.ActionURL,
			NotificationID: payload.NotificationID.String(),
		})
		if err == nil {
			continue
		}

		if errors.Is(err, push.ErrUnregistered) {
			if delErr := h.tokenRepo.DeleteByToken(ctx, deviceToken.Token); delErr != nil {
				log.Printf("Warning: failed to drop stale token: %v", delErr)
			}
			continue
		}

		// One attempt per token; a transient provider failure is logged
		// and abandoned.
		log.Printf("Warning: push delivery failed for notification %s: %v", payload.NotificationID, err)
	}

	return nil
}

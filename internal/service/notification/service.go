package notification

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"

	"nextalk-server/internal/domain"
	"nextalk-server/internal/queue"
	"nextalk-server/internal/repository"
	"nextalk-server/internal/service/email"
	"nextalk-server/internal/service/media"
)

var (
	ErrNotFound         = errors.New("notification not found")
	ErrUnknownRecipient = errors.New("recipient does not exist")
)

// ImageAttachment is an optional broadcast image, uploaded once and shared
// by every recipient's notification.
type ImageAttachment struct {
	FileName    string
	FileSize    int64
	ContentType string
	Reader      io.Reader
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, notifID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Broadcast(ctx context.Context, input *domain.BroadcastInput, image *ImageAttachment) (int, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	tokenRepo repository.DeviceTokenRepository
	mediaSvc  media.Service
	emailSvc  email.Service
	enqueuer  queue.Enqueuer
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	tokenRepo repository.DeviceTokenRepository,
	mediaSvc media.Service,
	emailSvc email.Service,
	enqueuer queue.Enqueuer,
) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mediaSvc:  mediaSvc,
		emailSvc:  emailSvc,
		enqueuer:  enqueuer,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkAsRead is idempotent: marking an already-read notification succeeds
// without touching it. The read flag never goes back to unread.
func (s *service) MarkAsRead(ctx context.Context, userID, notifID uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, notifID)
	if err != nil {
		return err
	}
	if notif == nil || notif.UserID != userID {
		return ErrNotFound
	}
	if notif.IsRead {
		return nil
	}
	return s.notifRepo.MarkAsRead(ctx, notifID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

// Broadcast creates one notification per recipient and hands delivery to the
// worker queue. Recipients without a registered device token get the
// notification by email instead. Returns the number of recipients reached.
func (s *service) Broadcast(ctx context.Context, input *domain.BroadcastInput, image *ImageAttachment) (int, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	var objectName string
	if image != nil {
		var err error
		objectName, err = s.mediaSvc.UploadImage(ctx, image.FileName, image.FileSize, image.ContentType, image.Reader)
		if err != nil {
			return 0, err
		}
	}

	actionURL := ""
	if input.ActionURL != nil {
		actionURL = *input.ActionURL
	}

	sent := 0
	for _, userID := range input.UserIDs {
		recipient, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return sent, err
		}
		if recipient == nil {
			return sent, ErrUnknownRecipient
		}

		notif := &domain.Notification{
			ID:     uuid.New(),
			UserID: userID,
			Title:  input.Title,
			Body:   input.Body,
		}
		if objectName != "" {
			notif.Image = &objectName
		}
		if actionURL != "" {
			notif.ActionURL = &actionURL
		}

		if err := s.notifRepo.Create(ctx, notif); err != nil {
			return sent, err
		}

		imageURL := ""
		if objectName != "" {
			imageURL = s.mediaSvc.PublicURL(objectName)
		}

		tokens, err := s.tokenRepo.ListByUser(ctx, userID)
		if err != nil {
			return sent, err
		}

		if len(tokens) == 0 {
			// Single attempt, fire and forget; a lost email is not worth
			// failing the whole broadcast.
			go func(to, name string) {
				if err := s.emailSvc.SendNotificationEmail(context.Background(), to, name, input.Title, input.Body, actionURL); err != nil {
					log.Printf("Warning: failed to email notification to %s: %v", to, err)
				}
			}(recipient.Email, recipient.Username)
		} else {
			err := s.enqueuer.EnqueuePush(ctx, queue.PushPayload{
				NotificationID: notif.ID,
				UserID:         userID,
				Title:          input.Title,
				Body:           input.Body,
				ImageURL:       imageURL,
				ActionURL:      actionURL,
			})
			if err != nil {
				return sent, err
			}
		}

		sent++
	}

	return sent, nil
}

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"nextalk-server/internal/push"
	"nextalk-server/internal/queue"
)

type MediaService struct {
	mock.Mock
}

func (m *MediaService) UploadImage(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	args := m.Called(ctx, fileName, fileSize, mimeType, reader)
	return args.String(0), args.Error(1)
}

func (m *MediaService) PublicURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, toEmail, username, title, body, actionURL string) error {
	args := m.Called(ctx, toEmail, username, title, body, actionURL)
	return args.Error(0)
}

type Enqueuer struct {
	mock.Mock
}

func (m *Enqueuer) EnqueuePush(ctx context.Context, payload queue.PushPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type PushSender struct {
	mock.Mock
}

func (m *PushSender) Send(ctx context.Context, msg *push.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

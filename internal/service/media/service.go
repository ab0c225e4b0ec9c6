package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"nextalk-server/internal/config"
)

type Service interface {
	UploadImage(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	PublicURL(objectName string) string
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// UploadImage stores a broadcast attachment and returns the object name that
// notification rows reference.
func (s *service) UploadImage(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	objectName := fmt.Sprintf("notifications/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return objectName, nil
}

func (s *service) PublicURL(objectName string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(objectName))
}

package service

import (
	"github.com/minio/minio-go/v7"

	"nextalk-server/internal/config"
	"nextalk-server/internal/queue"
	"nextalk-server/internal/repository"
	"nextalk-server/internal/service/auth"
	"nextalk-server/internal/service/email"
	"nextalk-server/internal/service/media"
	"nextalk-server/internal/service/notification"
	"nextalk-server/internal/service/token"
	"nextalk-server/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Token        token.Service
	Media        media.Service
	Email        email.Service
	Notification notification.Service
}

func NewServices(repos *repository.Repositories, minioClient *minio.Client, enqueuer queue.Enqueuer, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	mediaService := media.NewService(minioClient, cfg)
	authService := auth.NewService(repos.User, repos.Session, repos.DeviceToken)
	userService := user.NewService(repos.User)
	tokenService := token.NewService(repos.DeviceToken)
	notificationService := notification.NewService(repos.Notification, repos.User, repos.DeviceToken, mediaService, emailService, enqueuer)

	return &Services{
		Auth:         authService,
		User:         userService,
		Token:        tokenService,
		Media:        mediaService,
		Email:        emailService,
		Notification: notificationService,
	}
}

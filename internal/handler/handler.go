package handler

import (
	"nextalk-server/internal/config"
	"nextalk-server/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Token        *TokenHandler
	User         *UserHandler
	Notification *NotificationHandler
	Media        *MediaHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth, cfg),
		Token:        NewTokenHandler(services.Token),
		User:         NewUserHandler(services.User),
		Notification: NewNotificationHandler(services.Notification),
		Media:        NewMediaHandler(services.Media),
	}
}

package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	User         UserRepository
	Notification NotificationRepository
	DeviceToken  DeviceTokenRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB, rdb *redis.Client, sessionTTL time.Duration) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Notification: NewNotificationRepository(db),
		DeviceToken:  NewDeviceTokenRepository(db),
		Session:      NewSessionRepository(rdb, sessionTTL),
	}
}

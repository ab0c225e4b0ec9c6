package token

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"nextalk-server/internal/domain"
	"nextalk-server/internal/repository"
)

var ErrEmptyToken = errors.New("token is required")

type Service interface {
	Register(ctx context.Context, userID uuid.UUID, token, userAgent string) error
	Remove(ctx context.Context, token string) error
}

type service struct {
	tokenRepo repository.DeviceTokenRepository
}

func NewService(tokenRepo repository.DeviceTokenRepository) Service {
	return &service{tokenRepo: tokenRepo}
}

func (s *service) Register(ctx context.Context, userID uuid.UUID, token, userAgent string) error {
	if token == "" {
		return ErrEmptyToken
	}

	deviceToken := &domain.DeviceToken{
		ID:     uuid.New(),
		UserID: userID,
		Token:  token,
	}
	if userAgent != "" {
		deviceToken.UserAgent = &userAgent
	}

	return s.tokenRepo.Upsert(ctx, deviceToken)
}

func (s *service) Remove(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	return s.tokenRepo.DeleteByToken(ctx, token)
}

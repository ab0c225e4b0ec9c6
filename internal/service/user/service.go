package user

import (
	"context"

	"nextalk-server/internal/domain"
	"nextalk-server/internal/repository"
)

type Service interface {
	List(ctx context.Context) ([]domain.UserSummary, error)
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) List(ctx context.Context) ([]domain.UserSummary, error) {
	return s.userRepo.List(ctx)
}

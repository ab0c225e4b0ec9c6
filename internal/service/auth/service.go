package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nextalk-server/internal/domain"
	"nextalk-server/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionInvalid     = errors.New("session expired or invalid")
)

type Service interface {
	Login(ctx context.Context, input domain.LoginInput, userAgent, ipAddress string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, userID uuid.UUID, token, deviceToken string, everywhere bool) error
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokenRepo   repository.DeviceTokenRepository
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokenRepo repository.DeviceTokenRepository) Service {
	return &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
	}
}

// Login verifies credentials and opens a session. The returned token is the
// raw cookie value; only its hash is stored.
func (s *service) Login(ctx context.Context, input domain.LoginInput, userAgent, ipAddress string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, "", err
	}
	token := hex.EncodeToString(tokenBytes)

	session := &repository.Session{
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, hashToken(token), session); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	session, err := s.sessionRepo.Get(ctx, hashToken(token))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionInvalid
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionInvalid
	}
	return user, nil
}

// Logout revokes the session and, when the browser presented its delivery
// token, removes it so the installation stops receiving pushes. With
// everywhere set, every session and every device token of the user is
// revoked instead.
func (s *service) Logout(ctx context.Context, userID uuid.UUID, token, deviceToken string, everywhere bool) error {
	if everywhere {
		if err := s.tokenRepo.DeleteForUser(ctx, userID); err != nil {
			log.Printf("Warning: failed to delete device tokens on logout: %v", err)
		}
		return s.sessionRepo.DeleteAllForUser(ctx, userID)
	}

	if deviceToken != "" {
		if err := s.tokenRepo.DeleteByToken(ctx, deviceToken); err != nil {
			log.Printf("Warning: failed to delete device token on logout: %v", err)
		}
	}

	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, hashToken(token))
}

// EnsureAdmin creates the bootstrap superuser when the username is not
// taken yet, so a fresh deployment has an operator account to log in with.
func (s *service) EnsureAdmin(ctx context.Context, username, email, password string) error {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsSuperuser:  true,
	})
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

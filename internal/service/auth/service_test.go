package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"nextalk-server/internal/domain"
	"nextalk-server/internal/mocks"
	"nextalk-server/internal/repository"
	"nextalk-server/internal/service/auth"
)

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	admin := &domain.User{
		ID:           uuid.New(),
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: hashedPassword(t, "secret"),
		IsSuperuser:  true,
	}

	t.Run("Success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(mockUserRepo, mockSessionRepo, new(mocks.DeviceTokenRepository))

		var storedHash string
		mockUserRepo.On("GetByUsername", ctx, "admin").Return(admin, nil).Once()
		mockSessionRepo.On("Create", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(s *repository.Session) bool {
			return s.UserID == admin.ID && s.UserAgent == "Mozilla/5.0" && s.IPAddress == "10.0.0.1"
		})).Run(func(args mock.Arguments) {
			storedHash = args.String(1)
		}).Return(nil).Once()

		user, token, err := svc.Login(ctx, domain.LoginInput{Username: "admin", Password: "secret"}, "Mozilla/5.0", "10.0.0.1")

		assert.NoError(t, err)
		assert.Equal(t, admin.ID, user.ID)
		assert.Len(t, token, 64)
		// Only the hash hits the store, never the cookie value itself.
		assert.NotEqual(t, token, storedHash)
		assert.Len(t, storedHash, 64)
		mockSessionRepo.AssertExpectations(t)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(mockUserRepo, mockSessionRepo, new(mocks.DeviceTokenRepository))

		mockUserRepo.On("GetByUsername", ctx, "admin").Return(admin, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "admin", Password: "wrong"}, "", "")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		mockSessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown User", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.SessionRepository), new(mocks.DeviceTokenRepository))

		mockUserRepo.On("GetByUsername", ctx, "nobody").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "nobody", Password: "secret"}, "", "")

		// Same error as a wrong password so the response does not leak
		// which usernames exist.
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Session", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(mockUserRepo, mockSessionRepo, new(mocks.DeviceTokenRepository))

		alice := &domain.User{ID: uuid.New(), Username: "alice"}
		mockSessionRepo.On("Get", ctx, mock.AnythingOfType("string")).Return(&repository.Session{UserID: alice.ID}, nil).Once()
		mockUserRepo.On("GetByID", ctx, alice.ID).Return(alice, nil).Once()

		user, err := svc.Authenticate(ctx, "sometoken")

		assert.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
	})

	t.Run("Empty Token", func(t *testing.T) {
		svc := auth.NewService(new(mocks.UserRepository), new(mocks.SessionRepository), new(mocks.DeviceTokenRepository))

		_, err := svc.Authenticate(ctx, "")
		assert.ErrorIs(t, err, auth.ErrSessionInvalid)
	})

	t.Run("Expired Session", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, new(mocks.DeviceTokenRepository))

		mockSessionRepo.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()

		_, err := svc.Authenticate(ctx, "stale")
		assert.ErrorIs(t, err, auth.ErrSessionInvalid)
	})

	t.Run("Deleted User", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockSessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(mockUserRepo, mockSessionRepo, new(mocks.DeviceTokenRepository))

		ghostID := uuid.New()
		mockSessionRepo.On("Get", ctx, mock.AnythingOfType("string")).Return(&repository.Session{UserID: ghostID}, nil).Once()
		mockUserRepo.On("GetByID", ctx, ghostID).Return(nil, nil).Once()

		_, err := svc.Authenticate(ctx, "orphaned")
		assert.ErrorIs(t, err, auth.ErrSessionInvalid)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Session And Device Token", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		mockTokenRepo := new(mocks.DeviceTokenRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, mockTokenRepo)

		mockTokenRepo.On("DeleteByToken", ctx, "fcm-token").Return(nil).Once()
		mockSessionRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil).Once()

		assert.NoError(t, svc.Logout(ctx, userID, "sometoken", "fcm-token", false))
		mockSessionRepo.AssertExpectations(t)
		mockTokenRepo.AssertExpectations(t)
	})

	t.Run("Without Device Token", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		mockTokenRepo := new(mocks.DeviceTokenRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, mockTokenRepo)

		mockSessionRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil).Once()

		assert.NoError(t, svc.Logout(ctx, userID, "sometoken", "", false))
		mockTokenRepo.AssertNotCalled(t, "DeleteByToken", mock.Anything, mock.Anything)
	})

	t.Run("Everywhere", func(t *testing.T) {
		mockSessionRepo := new(mocks.SessionRepository)
		mockTokenRepo := new(mocks.DeviceTokenRepository)
		svc := auth.NewService(new(mocks.UserRepository), mockSessionRepo, mockTokenRepo)

		mockTokenRepo.On("DeleteForUser", ctx, userID).Return(nil).Once()
		mockSessionRepo.On("DeleteAllForUser", ctx, userID).Return(nil).Once()

		assert.NoError(t, svc.Logout(ctx, userID, "sometoken", "fcm-token", true))
		mockSessionRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mockTokenRepo.AssertNotCalled(t, "DeleteByToken", mock.Anything, mock.Anything)
		mockSessionRepo.AssertExpectations(t)
		mockTokenRepo.AssertExpectations(t)
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Missing Superuser", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.SessionRepository), new(mocks.DeviceTokenRepository))

		mockUserRepo.On("GetByUsername", ctx, "admin").Return(nil, nil).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			if u.Username != "admin" || u.Email != "admin@example.com" || !u.IsSuperuser {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) == nil
		})).Return(nil).Once()

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@example.com", "secret"))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Existing User Is Left Alone", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockUserRepo, new(mocks.SessionRepository), new(mocks.DeviceTokenRepository))

		mockUserRepo.On("GetByUsername", ctx, "admin").Return(&domain.User{ID: uuid.New(), Username: "admin"}, nil).Once()

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@example.com", "secret"))
		mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

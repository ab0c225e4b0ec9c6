package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nextalk-server/internal/domain"
	"nextalk-server/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

// SessionRequired resolves the session cookie to a user on every request;
// nothing is cached between navigations.
func SessionRequired(authService auth.Service, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return Unauthorized("Not logged in")
		}

		user, err := authService.Authenticate(c.Context(), token)
		if err != nil || user == nil {
			return Unauthorized("Session expired or invalid")
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

// AdminRequired gates operator-only routes; it runs after SessionRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("Not logged in")
		}
		if !user.IsSuperuser {
			return Forbidden("Administrator access required")
		}
		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

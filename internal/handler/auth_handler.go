package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"nextalk-server/internal/config"
	"nextalk-server/internal/domain"
	"nextalk-server/internal/middleware"
	"nextalk-server/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
	cfg         *config.Config
}

func NewAuthHandler(authService auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return middleware.BadRequest("Username and password are required")
	}

	user, token, err := h.authService.Login(c.Context(), input, c.Get(fiber.HeaderUserAgent), c.IP())
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid username or password")
		}
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.cfg.SessionTTL),
		HTTPOnly: true,
		Secure:   h.cfg.Environment == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":    user,
		"message": "Login successful",
	})
}

// Session answers the "who am I" check the frontend guard issues on every
// protected-page load; SessionRequired has already resolved the user.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": middleware.GetCurrentUser(c),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input struct {
		Token      string `json:"token"`
		Everywhere bool   `json:"everywhere"`
	}
	// Both fields are optional; an empty body is fine.
	_ = c.BodyParser(&input)

	userID := middleware.GetCurrentUserID(c)
	sessionToken := c.Cookies(h.cfg.SessionCookieName)
	if err := h.authService.Logout(c.Context(), userID, sessionToken, input.Token, input.Everywhere); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Environment == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

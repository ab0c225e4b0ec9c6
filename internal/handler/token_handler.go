package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nextalk-server/internal/middleware"
	"nextalk-server/internal/service/token"
)

type TokenHandler struct {
	tokenService token.Service
}

func NewTokenHandler(tokenService token.Service) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

func (h *TokenHandler) AddToken(c *fiber.Ctx) error {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	userID := middleware.GetCurrentUserID(c)
	err := h.tokenService.Register(c.Context(), userID, input.Token, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		if errors.Is(err, token.ErrEmptyToken) {
			return middleware.BadRequest("Token is required")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Token registered",
	})
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"nextalk-server/internal/middleware"
	"nextalk-server/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Get redirects to the object's public storage URL; the bucket serves the
// bytes itself.
func (h *MediaHandler) Get(c *fiber.Ctx) error {
	objectName := c.Params("*")
	if objectName == "" {
		return middleware.BadRequest("Object name is required")
	}

	return c.Redirect(h.mediaService.PublicURL(objectName), fiber.StatusFound)
}

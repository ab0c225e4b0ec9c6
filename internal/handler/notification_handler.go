package handler

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nextalk-server/internal/domain"
	"nextalk-server/internal/middleware"
	"nextalk-server/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	notifications, err := h.notifService.List(c.Context(), userID)
	if err != nil {
		return err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": notifications,
	})
}

// UnreadCount serves the badge count for clients that want it without
// pulling the whole list.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

// MarkRead serves the `PUT /notifications` shape where the id travels in
// the body.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	var input struct {
		ID string `json:"id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	notifID, err := uuid.Parse(input.ID)
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	return h.markRead(c, notifID)
}

// MarkReadByID serves the `PATCH /notifications/:id/read` shape.
func (h *NotificationHandler) MarkReadByID(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	return h.markRead(c, notifID)
}

func (h *NotificationHandler) markRead(c *fiber.Ctx, notifID uuid.UUID) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.notifService.MarkAsRead(c.Context(), userID, notifID); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.notifService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}

type broadcastJSON struct {
	UserIDs   []string `json:"userIds"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	ActionURL string   `json:"actionUrl"`
}

// Broadcast accepts multipart form data when an image rides along and plain
// JSON otherwise.
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	var req broadcastJSON
	var image *notification.ImageAttachment

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := json.Unmarshal([]byte(c.FormValue("userIds")), &req.UserIDs); err != nil {
			return middleware.BadRequest("Invalid userIds")
		}
		req.Title = c.FormValue("title")
		req.Body = c.FormValue("body")
		req.ActionURL = c.FormValue("actionUrl")

		if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
			file, err := fileHeader.Open()
			if err != nil {
				return middleware.BadRequest("Invalid image attachment")
			}
			defer file.Close()

			image = &notification.ImageAttachment{
				FileName:    fileHeader.Filename,
				FileSize:    fileHeader.Size,
				ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
				Reader:      file,
			}
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	input := &domain.BroadcastInput{
		Title: req.Title,
		Body:  req.Body,
	}
	if req.ActionURL != "" {
		input.ActionURL = &req.ActionURL
	}
	for _, raw := range req.UserIDs {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid user ID: " + raw)
		}
		input.UserIDs = append(input.UserIDs, userID)
	}

	recipients, err := h.notifService.Broadcast(c.Context(), input, image)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoRecipients),
			errors.Is(err, domain.ErrTitleRequired),
			errors.Is(err, domain.ErrTitleTooLong),
			errors.Is(err, domain.ErrBodyRequired),
			errors.Is(err, domain.ErrBodyTooLong),
			errors.Is(err, domain.ErrInvalidActionURL),
			errors.Is(err, notification.ErrUnknownRecipient):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Notification sent",
		"recipients": recipients,
	})
}

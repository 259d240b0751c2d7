package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gram-seva/internal/middleware"
	"gram-seva/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	ref, err := middleware.GetRecipient(c)
	if err != nil {
		return err
	}

	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.notifService.List(c.Context(), ref, unreadOnly, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	ref, err := middleware.GetRecipient(c)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": h.notifService.UnreadCount(c.Context(), ref),
	})
}

// MarkAsRead reports whether anything changed so the client can tell
// "marked" apart from "already read or not yours".
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	ref, err := middleware.GetRecipient(c)
	if err != nil {
		return err
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	marked, err := h.notifService.MarkAsRead(c.Context(), notifID, ref)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"marked": marked,
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	ref, err := middleware.GetRecipient(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.MarkAllAsRead(c.Context(), ref)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"marked": count,
	})
}

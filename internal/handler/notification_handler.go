package handler

import (
	"github.com/doguscu/barcode-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service service.NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(s service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: s, logger: logger}
}

// GET /api/v1/notifications
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	notifications, err := h.service.GetAll()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(notifications)
}

// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.service.UnreadCount()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}
	if err := h.service.MarkRead(id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.service.MarkAllRead()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read", "updated": n})
}

// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}
	if err := h.service.Delete(id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}

// DELETE /api/v1/notifications
func (h *NotificationHandler) ClearNotifications(c *fiber.Ctx) error {
	if err := h.service.Clear(); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Notifications cleared"})
}

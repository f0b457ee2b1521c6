package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/postpilothq/postpilot/internal/queue"
	"github.com/postpilothq/postpilot/internal/transfer"
)

// NotificationsHandler is the queued counterpart of EmailHandler: the
// request is acknowledged once the task is parked, delivery happens in
// the worker. Used by the scheduled posting functions, which must not
// block on a slow mail server.
type NotificationsHandler struct {
	AsynqClient *asynq.Client
}

func NewNotificationsHandler(asynqClient *asynq.Client) *NotificationsHandler {
	return &NotificationsHandler{AsynqClient: asynqClient}
}

func (h *NotificationsHandler) QueueFailedPost(c *fiber.Ctx) error {
	var req transfer.FailedPostNotification
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.UserEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userEmail is required",
		})
	}

	if err := queue.EnqueueFailedPostAlert(h.AsynqClient, req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to queue notification",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "Notification queued",
	})
}

func (h *NotificationsHandler) QueueTokenExpiry(c *fiber.Ctx) error {
	var req transfer.TokenExpirationNotification
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.UserEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userEmail is required",
		})
	}

	if err := queue.EnqueueTokenExpiryAlert(h.AsynqClient, req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to queue notification",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "Notification queued",
	})
}

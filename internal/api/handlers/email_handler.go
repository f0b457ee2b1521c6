package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postpilothq/postpilot/internal/service"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type EmailHandler struct {
	s service.EmailService
}

func NewEmailHandler(s service.EmailService) *EmailHandler {
	return &EmailHandler{s: s}
}

func (h *EmailHandler) Status(c *fiber.Ctx) error {
	if !h.s.IsConfigured() {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"enabled": false,
			"message": "Email notifications are disabled: mail credentials are not configured",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"enabled": true,
		"message": "Email notifications are enabled",
	})
}

// FailedPost sends a failed-post alert. An unconfigured transport is a
// success-shaped response with success:false, not an error; only a real
// transport failure is a 500.
func (h *EmailHandler) FailedPost(c *fiber.Ctx) error {
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

	if !h.s.IsConfigured() {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Email notifications are disabled: mail credentials are not configured",
		})
	}

	if err := h.s.SendFailedPostAlert(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to send notification email",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Notification email sent",
	})
}

func (h *EmailHandler) TokenExpiration(c *fiber.Ctx) error {
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

	if !h.s.IsConfigured() {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Email notifications are disabled: mail credentials are not configured",
		})
	}

	if err := h.s.SendTokenExpirationAlert(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to send notification email",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Notification email sent",
	})
}

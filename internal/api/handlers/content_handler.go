package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postpilothq/postpilot/internal/service"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type ContentHandler struct {
	cs service.ComplianceService
	qs service.QualityService
}

func NewContentHandler(cs service.ComplianceService, qs service.QualityService) *ContentHandler {
	return &ContentHandler{cs: cs, qs: qs}
}

func (h *ContentHandler) Validate(c *fiber.Ctx) error {
	var req transfer.ContentValidationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.Platform == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "platform is required",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.cs.Validate(req.Content, req.Platform, req.MediaCount))
}

func (h *ContentHandler) Quality(c *fiber.Ctx) error {
	var req transfer.QualityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.qs.Analyze(req.Content))
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postpilothq/postpilot/internal/service"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type LinkPreviewHandler struct {
	s service.LinkPreviewService
}

func NewLinkPreviewHandler(s service.LinkPreviewService) *LinkPreviewHandler {
	return &LinkPreviewHandler{s: s}
}

// Preview always answers 200 for a reachable request with a url: a dead
// or slow target page yields a degraded payload with error:true so the
// rendering component never breaks.
func (h *LinkPreviewHandler) Preview(c *fiber.Ctx) error {
	var req transfer.LinkPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url is required",
		})
	}

	preview := h.s.FetchPreview(c.Context(), req.URL)
	return c.Status(fiber.StatusOK).JSON(preview)
}

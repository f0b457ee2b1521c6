package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postpilothq/postpilot/internal/service"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type TrendsHandler struct {
	s       service.TrendService
	fetcher service.TrendFetcher
}

func NewTrendsHandler(s service.TrendService, fetcher service.TrendFetcher) *TrendsHandler {
	return &TrendsHandler{s: s, fetcher: fetcher}
}

func (h *TrendsHandler) Research(c *fiber.Ctx) error {
	var req transfer.TrendResearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	result, err := h.s.FindTrendsWithCache(c.Context(), req.Query, h.fetcher)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Trend research failed",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TrendsHandler) CacheStats(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.GetStats(c.Context()))
}

func (h *TrendsHandler) Invalidate(c *fiber.Ctx) error {
	var req transfer.CacheInvalidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	if err := h.s.Invalidate(c.Context(), req.Query); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to invalidate cache entry",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

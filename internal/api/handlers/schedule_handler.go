package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/postpilothq/postpilot/internal/service"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type ScheduleHandler struct {
	s  service.ScheduleService
	bt service.BestTimeService
}

func NewScheduleHandler(s service.ScheduleService, bt service.BestTimeService) *ScheduleHandler {
	return &ScheduleHandler{s: s, bt: bt}
}

func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	userID := GetUserID(c)

	filters := &transfer.ScheduleFilters{
		Platforms: splitCSV(c.Query("platforms")),
		Statuses:  splitCSV(c.Query("statuses")),
		Sources:   splitCSV(c.Query("sources")),
	}

	posts, err := h.s.GetUnifiedSchedule(c.Context(), userID, filters)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load schedule",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

func (h *ScheduleHandler) GetStats(c *fiber.Ctx) error {
	userID := GetUserID(c)

	stats, err := h.s.GetScheduleStats(c.Context(), userID)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load schedule stats",
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *ScheduleHandler) BulkReschedule(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.BulkRescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	result, err := h.s.BulkReschedule(c.Context(), userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ScheduleHandler) BulkDelete(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	result, err := h.s.BulkDelete(c.Context(), userID, req.Targets)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to delete posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ScheduleHandler) RemovePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.DeleteTarget
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if err := h.s.DeletePost(c.Context(), userID, req.ID, req.Source); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove post",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ScheduleHandler) ExportCSV(c *fiber.Ctx) error {
	userID := GetUserID(c)

	filters := &transfer.ScheduleFilters{
		Platforms: splitCSV(c.Query("platforms")),
		Statuses:  splitCSV(c.Query("statuses")),
		Sources:   splitCSV(c.Query("sources")),
	}

	posts, err := h.s.GetUnifiedSchedule(c.Context(), userID, filters)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load schedule",
		})
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="schedule.csv"`)
	return c.Status(fiber.StatusOK).Send(h.s.ScheduleCSV(posts))
}

func (h *ScheduleHandler) BestTimes(c *fiber.Ctx) error {
	platform := c.Query("platform")
	if platform == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "platform is required",
		})
	}

	suggestions := h.bt.SuggestionsFor(platform)
	if suggestions == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported platform",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"platform":    platform,
		"suggestions": suggestions,
	})
}

func (h *ScheduleHandler) CreateQuickPost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.QuickPostCreation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	id, err := h.s.CreateQuickPost(c.Context(), userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":      id,
		"message": "Post scheduled successfully",
	})
}

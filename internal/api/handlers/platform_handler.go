package handlers

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/postpilothq/postpilot/configs"
	"github.com/postpilothq/postpilot/internal/service"
)

type PlatformHandler struct {
	s   service.OAuthService
	cfg config.Config
}

func NewPlatformHandler(s service.OAuthService, cfg config.Config) *PlatformHandler {
	return &PlatformHandler{s: s, cfg: cfg}
}

func (h *PlatformHandler) ConnectAccount(c *fiber.Ctx) error {
	platform := c.Params("platform")

	authURL, err := h.s.BeginConnect(c.Context(), platform)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Redirect(authURL, fiber.StatusTemporaryRedirect)
}

// CallbackHandler consumes the parked verifier and hands control back to
// the frontend; the external functions finish the token exchange.
func (h *PlatformHandler) CallbackHandler(c *fiber.Ctx) error {
	platform := c.Params("platform")
	state := c.Query("state")

	if state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "state is required",
		})
	}

	if _, err := h.s.CompleteConnect(c.Context(), platform, state); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Redirect(h.cfg.FrontendURL+"/accounts?connected="+platform, fiber.StatusTemporaryRedirect)
}

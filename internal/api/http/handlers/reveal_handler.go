package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/match-reveal-service/internal/service"
)

// RevealHandler exposes the public match lookup.
type RevealHandler struct {
	reveal *service.RevealService
}

// NewRevealHandler constructs handler.
func NewRevealHandler(revealService *service.RevealService) *RevealHandler {
	return &RevealHandler{reveal: revealService}
}

// Reveal handles GET /matches/:id.
func (h *RevealHandler) Reveal(c *fiber.Ctx) error {
	result, err := h.reveal.Reveal(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

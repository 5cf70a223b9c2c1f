package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/match-reveal-service/internal/api/dto"
	"github.com/spec-kit/match-reveal-service/internal/domain"
	"github.com/spec-kit/match-reveal-service/internal/service"
	apperrors "github.com/spec-kit/match-reveal-service/pkg/util/errorutil"
)

// ParticipantsHandler manages admin participant and match endpoints.
type ParticipantsHandler struct {
	pairing *service.PairingService
}

// NewParticipantsHandler constructs handler.
func NewParticipantsHandler(pairingService *service.PairingService) *ParticipantsHandler {
	return &ParticipantsHandler{pairing: pairingService}
}

// List handles GET /users.
func (h *ParticipantsHandler) List(c *fiber.Ctx) error {
	participants, err := h.pairing.ListParticipants(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	items := make([]dto.ParticipantSummary, 0, len(participants))
	for i := range participants {
		items = append(items, participantSummary(&participants[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /users.
func (h *ParticipantsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateParticipantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.Identifier == "" || req.DisplayName == "" {
		return apperrors.NewInvalidInput("identifier and display_name required", nil)
	}

	participant, err := h.pairing.CreateParticipant(c.UserContext(), req.Identifier, req.DisplayName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": participantSummary(participant)})
}

// Delete handles DELETE /users/delete/:recordId.
func (h *ParticipantsHandler) Delete(c *fiber.Ctx) error {
	if err := h.pairing.DeleteParticipant(c.UserContext(), c.Params("recordId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "participant deleted"}})
}

// CreateMatch handles POST /users/match.
func (h *ParticipantsHandler) CreateMatch(c *fiber.Ctx) error {
	var req dto.CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.IdentifierA == "" || req.IdentifierB == "" {
		return apperrors.NewInvalidInput("both identifiers are required", nil)
	}

	if err := h.pairing.CreateMatch(c.UserContext(), req.IdentifierA, req.IdentifierB); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "match created"}})
}

// RemoveMatch handles DELETE /users/match.
func (h *ParticipantsHandler) RemoveMatch(c *fiber.Ctx) error {
	var req dto.RemoveMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.Identifier == "" {
		return apperrors.NewInvalidInput("identifier is required", nil)
	}

	if err := h.pairing.RemoveMatch(c.UserContext(), req.Identifier); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "match removed"}})
}

func participantSummary(p *domain.Participant) dto.ParticipantSummary {
	return dto.ParticipantSummary{
		ID:                p.ID,
		Identifier:        p.Identifier,
		DisplayName:       p.DisplayName,
		MatchedIdentifier: p.MatchedIdentifier,
		CreatedAt:         p.CreatedAt,
	}
}

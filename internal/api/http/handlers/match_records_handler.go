package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/match-reveal-service/internal/api/dto"
	"github.com/spec-kit/match-reveal-service/internal/domain"
	"github.com/spec-kit/match-reveal-service/internal/service"
	apperrors "github.com/spec-kit/match-reveal-service/pkg/util/errorutil"
)

// MatchRecordsHandler manages admin endpoints for one-directional assignment
// records.
type MatchRecordsHandler struct {
	assignments *service.AssignmentService
}

// NewMatchRecordsHandler constructs handler.
func NewMatchRecordsHandler(assignmentService *service.AssignmentService) *MatchRecordsHandler {
	return &MatchRecordsHandler{assignments: assignmentService}
}

// List handles GET /matches.
func (h *MatchRecordsHandler) List(c *fiber.Ctx) error {
	records, err := h.assignments.ListRecords(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	items := make([]dto.MatchRecordSummary, 0, len(records))
	for i := range records {
		items = append(items, matchRecordSummary(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /matches.
func (h *MatchRecordsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMatchRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.SourceIdentifier == "" || req.TargetIdentifier == "" || req.TargetDisplayName == "" {
		return apperrors.NewInvalidInput("source_identifier, target_identifier, target_display_name required", nil)
	}

	rec, err := h.assignments.CreateRecord(c.UserContext(), recordInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": matchRecordSummary(rec)})
}

// Delete handles DELETE /matches/delete/:recordId.
func (h *MatchRecordsHandler) Delete(c *fiber.Ctx) error {
	if err := h.assignments.DeleteRecord(c.UserContext(), c.Params("recordId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "record deleted"}})
}

// Import handles POST /matches/import.
func (h *MatchRecordsHandler) Import(c *fiber.Ctx) error {
	var req dto.ImportMatchRecordsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	inputs := make([]service.RecordInput, 0, len(req.Records))
	for _, row := range req.Records {
		inputs = append(inputs, recordInput(row))
	}

	result, err := h.assignments.ImportBatch(c.UserContext(), inputs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

func recordInput(req dto.CreateMatchRecordRequest) service.RecordInput {
	return service.RecordInput{
		SourceIdentifier:  req.SourceIdentifier,
		TargetIdentifier:  req.TargetIdentifier,
		TargetDisplayName: req.TargetDisplayName,
	}
}

func matchRecordSummary(rec *domain.MatchRecord) dto.MatchRecordSummary {
	return dto.MatchRecordSummary{
		ID:                rec.ID,
		SourceIdentifier:  rec.SourceIdentifier,
		TargetIdentifier:  rec.TargetIdentifier,
		TargetDisplayName: rec.TargetDisplayName,
		CreatedAt:         rec.CreatedAt,
	}
}

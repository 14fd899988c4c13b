package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/interaction-analytics/internal/api/dto"
	"github.com/spec-kit/interaction-analytics/internal/domain"
	"github.com/spec-kit/interaction-analytics/internal/service"
	apperrors "github.com/spec-kit/interaction-analytics/pkg/util/errorutil"
)

// AdminHandler serves ingestion and snapshot administration.
type AdminHandler struct {
	service *service.AnalyticsService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(analyticsService *service.AnalyticsService) *AdminHandler {
	return &AdminHandler{service: analyticsService}
}

// Ingest POST /events. Malformed records are dropped and counted, the rest
// persisted.
func (h *AdminHandler) Ingest(c *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Records) == 0 {
		return apperrors.NewValidationError("records required", nil)
	}

	records := make([]domain.Event, 0, len(req.Records))
	dropped := 0
	for _, raw := range req.Records {
		event, ok := raw.Event()
		if !ok {
			dropped++
			continue
		}
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		records = append(records, event)
	}

	accepted := 0
	if len(records) > 0 {
		var err error
		accepted, err = h.service.Ingest(c.Context(), records, dropped)
		if err != nil {
			return err
		}
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": dto.IngestResponse{
		Accepted: accepted,
		Dropped:  dropped,
	}})
}

// Refresh POST /admin/refresh forces a snapshot reload.
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	if err := h.service.Refresh(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"version": h.service.SnapshotVersion()}})
}

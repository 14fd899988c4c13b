package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interaction-analytics/internal/analytics"
	"github.com/spec-kit/interaction-analytics/internal/api/dto"
	"github.com/spec-kit/interaction-analytics/internal/domain"
	"github.com/spec-kit/interaction-analytics/internal/service"
	apperrors "github.com/spec-kit/interaction-analytics/pkg/util/errorutil"
)

// AnalyticsHandler serves the aggregation read endpoints.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// TimeSeries GET /analytics/timeseries.
func (h *AnalyticsHandler) TimeSeries(c *fiber.Ctx) error {
	spec, err := dto.ParseFilterSpec(c)
	if err != nil {
		return err
	}
	granularity, err := dto.ParseGranularity(c)
	if err != nil {
		return err
	}

	metric := c.Query("metric", "tag_share")
	switch metric {
	case "tag_share":
		tag, ok := domain.ParseProblemTag(c.Query("tag"))
		if !ok {
			return apperrors.NewValidationError("unknown or missing tag", map[string]any{"tag": c.Query("tag")})
		}
		series, err := h.service.TagShareSeries(spec, tag, granularity)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": series})
	case "overlap_rate":
		series, err := h.service.OverlapSeriesOverall(spec, granularity)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": series})
	}
	return apperrors.NewValidationError("unknown metric", map[string]any{"metric": metric})
}

// Funnel GET /analytics/funnel.
func (h *AnalyticsHandler) Funnel(c *fiber.Ctx) error {
	spec, err := dto.ParseFilterSpec(c)
	if err != nil {
		return err
	}
	rows, err := h.service.Funnel(spec)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows})
}

// Flow GET /analytics/flow.
func (h *AnalyticsHandler) Flow(c *fiber.Ctx) error {
	spec, err := dto.ParseFilterSpec(c)
	if err != nil {
		return err
	}
	graph, err := h.service.FlowGraph(spec)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": graph})
}

// Heatmap GET /analytics/heatmap.
func (h *AnalyticsHandler) Heatmap(c *fiber.Ctx) error {
	spec, err := dto.ParseFilterSpec(c)
	if err != nil {
		return err
	}
	matrix, err := h.service.Heatmap(spec, c.Query("x", "hour"), c.Query("y", "channel"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": matrix})
}

// Overlap GET /analytics/overlap.
func (h *AnalyticsHandler) Overlap(c *fiber.Ctx) error {
	spec, err := dto.ParseFilterSpec(c)
	if err != nil {
		return err
	}
	granularity, err := dto.ParseGranularity(c)
	if err != nil {
		return err
	}

	topN := 0
	if raw := c.Query("top_n"); raw != "" {
		topN, err = strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewConfigError("top_n must be an integer", map[string]any{"top_n": raw})
		}
	}

	result, err := h.service.Overlap(spec, c.Query("dimension"), granularity, topN)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// Bubbles POST /analytics/bubbles.
func (h *AnalyticsHandler) Bubbles(c *fiber.Ctx) error {
	spec, err := dto.ParseFilterSpec(c)
	if err != nil {
		return err
	}

	var req dto.BubbleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	var granularity *domain.Granularity
	if req.Granularity != nil {
		g, ok := domain.ParseGranularity(*req.Granularity)
		if !ok {
			return apperrors.NewConfigError("unknown granularity", map[string]any{"granularity": *req.Granularity})
		}
		granularity = &g
	}

	var weights analytics.Weights
	if len(req.Weights) > 0 {
		weights = make(analytics.Weights, len(req.Weights))
		for raw, w := range req.Weights {
			tag, ok := domain.ParseProblemTag(raw)
			if !ok {
				return apperrors.NewConfigError("unknown tag in weights", map[string]any{"tag": raw})
			}
			weights[tag] = w
		}
	}

	points, err := h.service.BubbleMatrix(spec, weights, req.Thresholds, granularity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": points})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interaction-analytics/internal/observability"
	"github.com/spec-kit/interaction-analytics/internal/persistence"
	"github.com/spec-kit/interaction-analytics/internal/service"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
	service  *service.AnalyticsService
	metrics  *observability.Metrics
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, analyticsService *service.AnalyticsService, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{postgres: pg, redis: redis, service: analyticsService, metrics: metrics}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	if pool := h.postgres.PoolHandle(); pool != nil {
		if err := pool.Ping(c.Context()); err != nil {
			checks["postgres"] = "unreachable"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "not configured"
	}

	if err := h.redis.Ping(c.Context()); err != nil {
		checks["redis"] = "unreachable"
	} else {
		checks["redis"] = "ok"
	}

	version := h.service.SnapshotVersion()
	if version == "" {
		checks["snapshot"] = "not loaded"
		healthy = false
	} else {
		events, loadedAt := h.metrics.SnapshotInfo()
		checks["snapshot"] = fiber.Map{
			"version":   version,
			"events":    events,
			"loaded_at": loadedAt,
		}
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"checks": checks})
}

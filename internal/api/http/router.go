package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interaction-analytics/internal/api/http/handlers"
	"github.com/spec-kit/interaction-analytics/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Analytics      *handlers.AnalyticsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	read := api.Group("/analytics", auth.RequireRole(auth.RoleAnalyst))
	read.Get("/timeseries", cfg.Analytics.TimeSeries)
	read.Get("/funnel", cfg.Analytics.Funnel)
	read.Get("/flow", cfg.Analytics.Flow)
	read.Get("/heatmap", cfg.Analytics.Heatmap)
	read.Get("/overlap", cfg.Analytics.Overlap)
	read.Post("/bubbles", cfg.Analytics.Bubbles)

	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.Post("/events", cfg.Admin.Ingest)
	admin.Post("/admin/refresh", cfg.Admin.Refresh)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ack-hub/internal/api/http/handlers"
	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Forms          *handlers.FormsHandler
	Submissions    *handlers.SubmissionsHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	authGroup := app.Group("/auth")
	authGroup.Get("/users", cfg.Auth.Users)
	authGroup.Post("/login", cfg.Auth.Login)

	requireUser := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAuthenticated()}

	session := authGroup.Group("", requireUser...)
	session.Post("/switch", cfg.Auth.Switch)
	session.Get("/me", cfg.Auth.Me)

	types := app.Group("/acknowledgment-types", requireUser...)
	types.Get("/", cfg.Catalog.List)
	types.Get("/:id", cfg.Catalog.Get)
	types.Post("/", cfg.Catalog.Create)
	types.Put("/:id", cfg.Catalog.Update)
	types.Delete("/:id", cfg.Catalog.Delete)

	forms := app.Group("/forms", requireUser...)
	forms.Post("/", cfg.Forms.Open)
	forms.Get("/:id", cfg.Forms.Get)
	forms.Patch("/:id", cfg.Forms.Update)
	forms.Post("/:id/submit", cfg.Forms.Submit)
	forms.Delete("/:id", cfg.Forms.Cancel)

	subs := app.Group("/submissions", requireUser...)
	subs.Get("/", cfg.Submissions.List)
	subs.Get("/stats", cfg.Submissions.Stats)
	subs.Get("/:id", cfg.Submissions.Get)
	subs.Get("/:id/export", cfg.Submissions.Export)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/match-reveal-service/internal/api/http/handlers"
	"github.com/spec-kit/match-reveal-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Reveal          *handlers.RevealHandler
	Participants    *handlers.ParticipantsHandler
	MatchRecords    *handlers.MatchRecordsHandler
	AdminMiddleware *auth.Middleware
	// RevealLimiter optionally gates the public reveal route server-side.
	// nil preserves the caller-enforced trust boundary.
	RevealLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/admin/auth", cfg.Auth.Login)

	// Public reveal. Registered alongside the admin listing on /matches; the
	// parameterized GET only collides with the bare collection path, which
	// fiber resolves by specificity.
	if cfg.RevealLimiter != nil {
		app.Get("/matches/:id", cfg.RevealLimiter, cfg.Reveal.Reveal)
	} else {
		app.Get("/matches/:id", cfg.Reveal.Reveal)
	}

	adminGuard := cfg.AdminMiddleware.Handle

	users := app.Group("/users", adminGuard)
	users.Get("/", cfg.Participants.List)
	users.Post("/", cfg.Participants.Create)
	users.Delete("/delete/:recordId", cfg.Participants.Delete)
	users.Post("/match", cfg.Participants.CreateMatch)
	users.Delete("/match", cfg.Participants.RemoveMatch)

	app.Get("/matches", adminGuard, cfg.MatchRecords.List)
	app.Post("/matches", adminGuard, cfg.MatchRecords.Create)
	app.Delete("/matches/delete/:recordId", adminGuard, cfg.MatchRecords.Delete)
	app.Post("/matches/import", adminGuard, cfg.MatchRecords.Import)
}

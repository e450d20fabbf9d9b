package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Services       *handlers.ServicesHandler
	Support        *handlers.SupportHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every protected route declares its role
// allow-set statically; static service paths register before the :id routes
// so fiber does not swallow them as parameters.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/register", cfg.Auth.Register)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/logout", auth.RequireAnyRole(), cfg.Auth.Logout)

	tickets := protected.Group("/tickets")
	tickets.Get("/", auth.RequireAnyRole(), cfg.Tickets.List)
	tickets.Post("/", auth.RequireRole(domain.RoleAdmin, domain.RoleAttendant), cfg.Tickets.Create)
	tickets.Put("/", auth.RequireRole(domain.RoleAdmin, domain.RoleAttendant), cfg.Tickets.Update)
	tickets.Get("/:id", auth.RequireAnyRole(), cfg.Tickets.Get)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.Delete)
	tickets.Post("/:id/restore", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.Restore)

	services := protected.Group("/services")
	services.Get("/areas", auth.RequireRole(domain.RoleAdmin), cfg.Services.ListAreas)
	services.Get("/types", auth.RequireRole(domain.RoleAdmin), cfg.Services.ListTypes)
	services.Get("/unassigned", auth.RequireRole(domain.RoleAdmin, domain.RoleSupport), cfg.Services.ListUnassigned)
	services.Get("/incomplete", auth.RequireRole(domain.RoleAdmin), cfg.Services.ListIncomplete)
	services.Get("/completed", auth.RequireRole(domain.RoleAdmin), cfg.Services.ListCompleted)
	services.Get("/", auth.RequireAnyRole(), cfg.Services.List)
	services.Post("/", auth.RequireRole(domain.RoleAdmin, domain.RoleAttendant), cfg.Services.Create)
	services.Put("/", auth.RequireRole(domain.RoleAdmin), cfg.Services.Update)
	services.Get("/:id", auth.RequireAnyRole(), cfg.Services.Get)
	services.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Services.Delete)
	services.Post("/:id/restore", auth.RequireRole(domain.RoleAdmin), cfg.Services.Restore)
	services.Put("/:id/associate", auth.RequireRole(domain.RoleAdmin, domain.RoleSupport), cfg.Services.Associate)
	services.Put("/:id/complete", auth.RequireRole(domain.RoleAdmin, domain.RoleSupport), cfg.Services.Complete)

	support := protected.Group("/support")
	support.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Support.List)
	support.Get("/available", auth.RequireRole(domain.RoleAdmin, domain.RoleAttendant), cfg.Support.ListAvailable)
}

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
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/auth", cfg.Users.Login)
	api.Post("/auth/register", cfg.Users.Register)

	users := api.Group("/user", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleTechnician))
	users.Post("", cfg.Users.Create)
	users.Put("", cfg.Users.Update)
	users.Get("/:id", cfg.Users.Get)
	users.Delete("/:id", cfg.Users.Delete)
	users.Get("/:page/:count", cfg.Users.List)

	tickets := api.Group("/ticket", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	customerOnly := auth.RequireRole(domain.RoleCustomer)
	tickets.Post("", customerOnly, cfg.Tickets.Create)
	tickets.Put("", customerOnly, cfg.Tickets.Update)

	// summary must be registered ahead of /:id
	tickets.Get("/summary", cfg.Tickets.Summary)
	tickets.Get("/:id", cfg.Tickets.FindByID)
	tickets.Delete("/:id", cfg.Tickets.Delete)
	tickets.Put("/:id/:status", cfg.Tickets.ChangeStatus)
	tickets.Get("/:page/:count", cfg.Tickets.List)
	tickets.Get("/:page/:count/:number/:title/:status/:priority/:assigned", cfg.Tickets.List)
}

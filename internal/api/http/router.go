package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/techdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/techdesk/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	TimeEntries    *handlers.TimeEntriesHandler
	Categories     *handlers.CategoriesHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuth(), cfg.Users.ChangePassword)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuth())

	protected.Get("/categories", cfg.Categories.List)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Post("/:id/complete", cfg.Tickets.Complete)
	tickets.Post("/:id/close", cfg.Tickets.Close)
	tickets.Post("/:id/reopen", cfg.Tickets.Reopen)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/time-entries", cfg.TimeEntries.AddManual)
	tickets.Post("/:id/timer/start", cfg.TimeEntries.StartTimer)
	tickets.Post("/:id/timer/stop", cfg.TimeEntries.StopTimer)

	protected.Delete("/time-entries/:id", cfg.TimeEntries.Delete)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/tickets", cfg.Admin.ListTickets)
	admin.Post("/tickets/:id/status", cfg.Admin.SetStatus)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Post("/users/:id/toggle-admin", cfg.Admin.ToggleAdmin)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ru28/complaint-management-system/internal/api/http/handlers"
	"github.com/Ru28/complaint-management-system/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Complaints     *handlers.ComplaintsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	accounts := app.Group("/accounts")
	accounts.Post("/signup", cfg.Accounts.Signup)
	accounts.Post("/login", cfg.Accounts.Login)
	accounts.Post("/password/reset/request", cfg.Accounts.RequestPasswordReset)
	accounts.Post("/password/reset/confirm", cfg.Accounts.ConfirmPasswordReset)

	accountsProtected := accounts.Group("", cfg.AuthMiddleware.Handle)
	accountsProtected.Get("/profile", cfg.Accounts.GetProfile)
	accountsProtected.Post("/update-profile", cfg.Accounts.UpdateProfile)
	accountsProtected.Post("/password/change", cfg.Accounts.ChangePassword)

	complaints := app.Group("/complaint", cfg.AuthMiddleware.Handle)
	complaints.Post("/raiseComplaint", cfg.Complaints.RaiseComplaint)
	complaints.Get("/myComplaint", cfg.Complaints.MyComplaints)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/all-complaints", cfg.Admin.AllComplaints)
	admin.Post("/resolve-complaint", cfg.Admin.ResolveComplaint)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Patch("/users/:id/role", cfg.Admin.UpdateUserRole)
}

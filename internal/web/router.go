package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vendorflow-web/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Pages    *PagesHandler
	Auth     *AuthHandler
	Bookings *BookingsHandler
	Services *ServicesHandler
	Health   *HealthHandler
	Guard    *Guard
}

// RegisterRoutes wires the client's route surface.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Pages.Home)
	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/register", cfg.Auth.RegisterPage)
	app.Post("/register", cfg.Auth.Register)
	app.Post("/logout", cfg.Auth.Logout)

	dashboard := app.Group("/dashboard", cfg.Guard.RequireIdentity)
	dashboard.Get("", cfg.Pages.Overview)
	dashboard.Get("/history", cfg.Bookings.History)

	customer := RequireCustomer()
	dashboard.Get("/bookings", customer, cfg.Bookings.Browse)
	dashboard.Post("/bookings", customer, cfg.Bookings.Create)
	dashboard.Get("/mybooking", customer, cfg.Bookings.MyBookings)
	dashboard.Post("/mybooking/update", customer, cfg.Bookings.UpdateDetails)
	dashboard.Post("/mybooking/delete", customer, cfg.Bookings.Delete)

	vendor := RequireVendor()
	dashboard.Get("/services", vendor, cfg.Services.List)
	dashboard.Post("/services", vendor, cfg.Services.Create)
	dashboard.Post("/services/update", vendor, cfg.Services.Update)
	dashboard.Post("/services/delete", vendor, cfg.Services.Delete)
	dashboard.Get("/vendor-bookings", vendor, cfg.Bookings.VendorRequests)
	dashboard.Post("/vendor-bookings/status", vendor, cfg.Bookings.UpdateStatus)

	app.Use(func(c *fiber.Ctx) error {
		return util.NewNotFound("page")
	})
}

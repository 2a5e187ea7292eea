package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/middleware"
)

// RegisterRoutes wires every route onto the app. Only the login pages are
// public; everything else sits behind the session auth gate.
func RegisterRoutes(app *fiber.App, store *session.Store, log logger.ILogger) {
	authHandler := NewAuthHandler(store, log)
	homeHandler := NewHomeHandler(store, log)
	manufacturerHandler := NewManufacturerHandler(log)
	carHandler := NewCarHandler(log)
	driverHandler := NewDriverHandler(log)

	// Public routes
	app.Get("/healthz", Health)
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	authed := app.Group("/", middleware.AuthRequired(store))

	authed.Get("/", homeHandler.Index)

	authed.Get("/manufacturers", manufacturerHandler.List)
	authed.Get("/manufacturers/create", manufacturerHandler.ShowCreateForm)
	authed.Post("/manufacturers/create", manufacturerHandler.Create)
	authed.Get("/manufacturers/:id/update", manufacturerHandler.ShowUpdateForm)
	authed.Post("/manufacturers/:id/update", manufacturerHandler.Update)
	authed.Post("/manufacturers/:id/delete", manufacturerHandler.Delete)

	authed.Get("/cars", carHandler.List)
	authed.Get("/cars/create", carHandler.ShowCreateForm)
	authed.Post("/cars/create", carHandler.Create)
	authed.Get("/cars/:id", carHandler.Detail)
	authed.Get("/cars/:id/update", carHandler.ShowUpdateForm)
	authed.Post("/cars/:id/update", carHandler.Update)
	authed.Post("/cars/:id/delete", carHandler.Delete)
	authed.Post("/cars/:id/assign-toggle", carHandler.ToggleAssign)

	authed.Get("/drivers", driverHandler.List)
	authed.Get("/drivers/create", driverHandler.ShowCreateForm)
	authed.Post("/drivers/create", driverHandler.Create)
	authed.Get("/drivers/:id", driverHandler.Detail)
	authed.Get("/drivers/:id/license-update", driverHandler.ShowLicenseUpdateForm)
	authed.Post("/drivers/:id/license-update", driverHandler.UpdateLicense)
	authed.Post("/drivers/:id/delete", driverHandler.Delete)
}

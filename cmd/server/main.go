// Package main is the entry point for the taxifleet application.
// It wires configuration, the database pool, migrations, and all HTTP routes.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"

	"github.com/avissapr/taxifleet/internal/config"
	"github.com/avissapr/taxifleet/internal/database"
	"github.com/avissapr/taxifleet/internal/handlers"
	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/middleware"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	if err := database.Connect(cfg); err != nil {
		log.Error("failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Error("failed to run migrations", logger.Error(err))
		os.Exit(1)
	}
	if version, dirty, err := database.MigrationVersion(cfg.DatabaseURL); err == nil {
		log.Info("database schema ready",
			logger.Any("migration_version", version),
			logger.Any("dirty", dirty),
		)
	}

	engine := html.New("./web/templates", ".html")
	if cfg.Env != "production" {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	app.Static("/static", "./web/static")

	store := session.New(session.Config{
		Expiration:     time.Duration(cfg.SessionHours) * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieName:     "session_id",
		CookiePath:     "/",
	})

	handlers.RegisterRoutes(app, store, log)

	log.Info("server starting", logger.Int("port", cfg.AppPort))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.AppPort)); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// errorHandler renders not-found and validation-adjacent fiber errors with
// their status, and hides everything else behind a generic 500 page so no
// internal detail leaks to the client.
func errorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).Render("error", fiber.Map{
				"Title":   "Error - TaxiFleet",
				"Status":  fiberErr.Code,
				"Message": fiberErr.Message,
			}, "layouts/blank")
		}

		log.Error("unhandled request error",
			logger.String("path", c.Path()),
			logger.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
			"Title":   "Error - TaxiFleet",
			"Status":  fiber.StatusInternalServerError,
			"Message": "Something went wrong",
		}, "layouts/blank")
	}
}

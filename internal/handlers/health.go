package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/taxifleet/internal/database"
)

// Health reports whether the service can reach its database. Public because
// deployment probes carry no session; it exposes no data beyond up/down.
func Health(c *fiber.Ctx) error {
	if !database.IsConnected() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

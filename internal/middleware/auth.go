// Package middleware provides HTTP middleware for authentication gating and
// request logging.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthRequired ensures the request carries an authenticated driver session.
// Unauthenticated requests are redirected to the login page; they never see
// protected content.
//
// Context locals set for downstream handlers:
//   - driver_id: the authenticated driver's ID (int)
//   - driver_username: the driver's username (string)
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		driverID := sess.Get("driver_id")
		if driverID == nil {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		c.Locals("driver_id", driverID)
		c.Locals("driver_username", sess.Get("driver_username"))

		return c.Next()
	}
}

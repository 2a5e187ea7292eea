package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/services"
)

// AuthHandler manages login, logout, and session lifecycle.
type AuthHandler struct {
	store       *session.Store
	authService *services.AuthService
	log         logger.ILogger
}

func NewAuthHandler(store *session.Store, log logger.ILogger) *AuthHandler {
	return &AuthHandler{
		store:       store,
		authService: services.NewAuthService(log),
		log:         log,
	}
}

// ShowLogin renders the login page.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Login - TaxiFleet",
	}, "layouts/blank")
}

// Login authenticates driver credentials and creates a session.
// On failure the login form is redisplayed with a generic error so the
// response does not reveal whether the username exists.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	driver, err := h.authService.Authenticate(c.Context(), username, password)
	if err != nil {
		h.log.Warning("login failed", logger.String("username", username))
		return c.Render("login", fiber.Map{
			"Title": "Login - TaxiFleet",
			"Error": "Invalid username or password",
		}, "layouts/blank")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}

	sess.Set("driver_id", driver.ID)
	sess.Set("driver_username", driver.Username)
	if err := sess.Save(); err != nil {
		return err
	}

	h.log.Info("login", logger.Int("driver_id", driver.ID))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/repository"
)

// HomeHandler renders the home page with fleet totals and a per-session
// visit counter.
type HomeHandler struct {
	store            *session.Store
	manufacturerRepo *repository.ManufacturerRepository
	carRepo          *repository.CarRepository
	driverRepo       *repository.DriverRepository
}

func NewHomeHandler(store *session.Store, log logger.ILogger) *HomeHandler {
	return &HomeHandler{
		store:            store,
		manufacturerRepo: repository.NewManufacturerRepository(log),
		carRepo:          repository.NewCarRepository(log),
		driverRepo:       repository.NewDriverRepository(log),
	}
}

// Index shows entity counts and increments the session visit counter
// (read-increment-store against the session store).
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	numManufacturers, err := h.manufacturerRepo.Count(c.Context())
	if err != nil {
		return err
	}
	numCars, err := h.carRepo.Count(c.Context())
	if err != nil {
		return err
	}
	numDrivers, err := h.driverRepo.Count(c.Context())
	if err != nil {
		return err
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	visits, _ := sess.Get("num_visits").(int)
	visits++
	sess.Set("num_visits", visits)
	if err := sess.Save(); err != nil {
		return err
	}

	return c.Render("index", fiber.Map{
		"Title":            "TaxiFleet",
		"DriverUsername":   c.Locals("driver_username"),
		"NumManufacturers": numManufacturers,
		"NumCars":          numCars,
		"NumDrivers":       numDrivers,
		"NumVisits":        visits,
	})
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/taxifleet/internal/forms"
	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/models"
	"github.com/avissapr/taxifleet/internal/repository"
)

// CarHandler serves the car list, detail, create, update, and delete pages,
// plus the driver self-assignment toggle.
type CarHandler struct {
	repo             *repository.CarRepository
	manufacturerRepo *repository.ManufacturerRepository
	driverRepo       *repository.DriverRepository
	log              logger.ILogger
}

func NewCarHandler(log logger.ILogger) *CarHandler {
	return &CarHandler{
		repo:             repository.NewCarRepository(log),
		manufacturerRepo: repository.NewManufacturerRepository(log),
		driverRepo:       repository.NewDriverRepository(log),
		log:              log,
	}
}

// List renders the searchable, paginated car list. The search term arrives
// in the "model" query parameter.
func (h *CarHandler) List(c *fiber.Ctx) error {
	return renderList(c, listPage[models.Car]{
		title:     "Cars - TaxiFleet",
		filterKey: "model",
		view:      "cars/list",
		fetch:     h.repo.List,
	})
}

// Detail renders one car with its manufacturer and assigned drivers, and
// tells the template whether the acting driver is currently assigned so the
// toggle button can read "assign" or "unassign".
func (h *CarHandler) Detail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	car, err := h.repo.FindByID(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	driverID := c.Locals("driver_id").(int)
	assigned, err := h.driverRepo.IsAssigned(c.Context(), driverID, id)
	if err != nil {
		return err
	}

	return c.Render("cars/detail", fiber.Map{
		"Title":          car.Model + " - TaxiFleet",
		"DriverUsername": c.Locals("driver_username"),
		"Car":            car,
		"Assigned":       assigned,
	})
}

// ToggleAssign flips the acting driver's membership on the target car:
// assigned drivers are removed, unassigned drivers are added. Each request
// strictly inverts the membership read at the start of the request, so two
// successive toggles restore the original state.
func (h *CarHandler) ToggleAssign(c *fiber.Ctx) error {
	carID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	exists, err := h.repo.Exists(c.Context(), carID)
	if err != nil {
		return err
	}
	if !exists {
		return fiber.ErrNotFound
	}

	driverID := c.Locals("driver_id").(int)

	assigned, err := h.driverRepo.IsAssigned(c.Context(), driverID, carID)
	if err != nil {
		return err
	}

	if assigned {
		err = h.driverRepo.RemoveCar(c.Context(), driverID, carID)
	} else {
		err = h.driverRepo.AddCar(c.Context(), driverID, carID)
	}
	if err != nil {
		return err
	}

	h.log.Info("assignment toggled",
		logger.Int("driver_id", driverID),
		logger.Int("car_id", carID),
		logger.Any("assigned", !assigned),
	)

	return c.Redirect("/cars/"+c.Params("id"), fiber.StatusSeeOther)
}

// ShowCreateForm renders an empty car form with the manufacturer select.
func (h *CarHandler) ShowCreateForm(c *fiber.Ctx) error {
	return h.renderForm(c, "/cars/create", models.CarForm{}, nil)
}

// Create validates and persists a new car, redisplaying the form with field
// errors on validation failure.
func (h *CarHandler) Create(c *fiber.Ctx) error {
	form := models.CarForm{
		Model:          c.FormValue("model"),
		ManufacturerID: c.FormValue("manufacturer_id"),
	}

	manufacturerID, errs := forms.ValidateCar(form)
	if errs.Has() {
		return h.renderForm(c, "/cars/create", form, errs)
	}

	car := &models.Car{Model: form.Model, ManufacturerID: manufacturerID}
	if err := h.repo.Create(c.Context(), car); err != nil {
		if repository.IsForeignKeyViolation(err) {
			errs["manufacturer"] = "manufacturer does not exist"
			return h.renderForm(c, "/cars/create", form, errs)
		}
		return err
	}

	return c.Redirect("/cars", fiber.StatusSeeOther)
}

// ShowUpdateForm renders the form pre-filled with the car's fields.
func (h *CarHandler) ShowUpdateForm(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	car, err := h.repo.FindByID(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	form := models.CarForm{
		Model:          car.Model,
		ManufacturerID: strconv.Itoa(car.ManufacturerID),
	}
	return h.renderForm(c, "/cars/"+c.Params("id")+"/update", form, nil)
}

// Update validates and persists car edits.
func (h *CarHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	form := models.CarForm{
		Model:          c.FormValue("model"),
		ManufacturerID: c.FormValue("manufacturer_id"),
	}

	manufacturerID, errs := forms.ValidateCar(form)
	if errs.Has() {
		return h.renderForm(c, "/cars/"+c.Params("id")+"/update", form, errs)
	}

	car := &models.Car{ID: id, Model: form.Model, ManufacturerID: manufacturerID}
	err = h.repo.Update(c.Context(), car)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			errs["manufacturer"] = "manufacturer does not exist"
			return h.renderForm(c, "/cars/"+c.Params("id")+"/update", form, errs)
		}
		return err
	}

	return c.Redirect("/cars", fiber.StatusSeeOther)
}

// Delete removes a car and redirects to the car list.
func (h *CarHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	err = h.repo.Delete(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	return c.Redirect("/cars", fiber.StatusSeeOther)
}

func (h *CarHandler) renderForm(c *fiber.Ctx, action string, form models.CarForm, errs forms.Errors) error {
	manufacturers, err := h.manufacturerRepo.List(c.Context(), "")
	if err != nil {
		return err
	}

	return c.Render("cars/form", fiber.Map{
		"Title":          "Car - TaxiFleet",
		"DriverUsername": c.Locals("driver_username"),
		"Action":         action,
		"Form":           form,
		"Errors":         errs,
		"Manufacturers":  manufacturers,
	})
}

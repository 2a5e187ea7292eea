package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/taxifleet/internal/forms"
	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/models"
	"github.com/avissapr/taxifleet/internal/repository"
	"github.com/avissapr/taxifleet/internal/services"
)

// DriverHandler serves the driver list, detail, create, license-update, and
// delete pages.
type DriverHandler struct {
	repo *repository.DriverRepository
}

func NewDriverHandler(log logger.ILogger) *DriverHandler {
	return &DriverHandler{repo: repository.NewDriverRepository(log)}
}

// List renders the searchable, paginated driver list. The search term
// arrives in the "username" query parameter.
func (h *DriverHandler) List(c *fiber.Ctx) error {
	return renderList(c, listPage[models.Driver]{
		title:     "Drivers - TaxiFleet",
		filterKey: "username",
		view:      "drivers/list",
		fetch:     h.repo.List,
	})
}

// Detail renders one driver with every assigned car and that car's
// manufacturer.
func (h *DriverHandler) Detail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	driver, err := h.repo.FindByID(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	return c.Render("drivers/detail", fiber.Map{
		"Title":          driver.Username + " - TaxiFleet",
		"DriverUsername": c.Locals("driver_username"),
		"Driver":         driver,
	})
}

// ShowCreateForm renders an empty driver creation form.
func (h *DriverHandler) ShowCreateForm(c *fiber.Ctx) error {
	return h.renderCreateForm(c, models.DriverForm{}, nil)
}

// Create validates and persists a new driver. The password is bcrypt-hashed
// before storage; duplicate usernames or license numbers come back from the
// store as unique violations and are mapped to field errors.
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	form := models.DriverForm{
		Username:      c.FormValue("username"),
		Password:      c.FormValue("password"),
		LicenseNumber: c.FormValue("license_number"),
		FirstName:     c.FormValue("first_name"),
		LastName:      c.FormValue("last_name"),
	}

	errs := forms.ValidateDriver(form)
	if errs.Has() {
		return h.renderCreateForm(c, form, errs)
	}

	hash, err := services.HashPassword(form.Password)
	if err != nil {
		return err
	}

	driver := &models.Driver{
		Username:      form.Username,
		PasswordHash:  hash,
		LicenseNumber: form.LicenseNumber,
		FirstName:     form.FirstName,
		LastName:      form.LastName,
	}
	if err := h.repo.Create(c.Context(), driver); err != nil {
		if repository.IsUniqueViolation(err) {
			errs["username"] = "username or license number is already taken"
			return h.renderCreateForm(c, form, errs)
		}
		return err
	}

	return c.Redirect("/drivers/"+strconv.Itoa(driver.ID), fiber.StatusSeeOther)
}

// ShowLicenseUpdateForm renders the single-field license update form.
func (h *DriverHandler) ShowLicenseUpdateForm(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	driver, err := h.repo.FindByID(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	form := models.LicenseUpdateForm{LicenseNumber: driver.LicenseNumber}
	return h.renderLicenseForm(c, c.Params("id"), form, nil)
}

// UpdateLicense validates and persists a driver's new license number.
func (h *DriverHandler) UpdateLicense(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	form := models.LicenseUpdateForm{LicenseNumber: c.FormValue("license_number")}

	errs := forms.ValidateLicenseUpdate(form)
	if errs.Has() {
		return h.renderLicenseForm(c, c.Params("id"), form, errs)
	}

	err = h.repo.UpdateLicense(c.Context(), id, form.LicenseNumber)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		if repository.IsUniqueViolation(err) {
			errs["license_number"] = "this license number is already registered"
			return h.renderLicenseForm(c, c.Params("id"), form, errs)
		}
		return err
	}

	return c.Redirect("/drivers", fiber.StatusSeeOther)
}

// Delete removes a driver and redirects to the driver list.
func (h *DriverHandler) Delete(c *fiber.Ctx) error {
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

	return c.Redirect("/drivers", fiber.StatusSeeOther)
}

func (h *DriverHandler) renderCreateForm(c *fiber.Ctx, form models.DriverForm, errs forms.Errors) error {
	return c.Render("drivers/form", fiber.Map{
		"Title":          "Create Driver - TaxiFleet",
		"DriverUsername": c.Locals("driver_username"),
		"Action":         "/drivers/create",
		"Form":           form,
		"Errors":         errs,
	})
}

func (h *DriverHandler) renderLicenseForm(c *fiber.Ctx, id string, form models.LicenseUpdateForm, errs forms.Errors) error {
	return c.Render("drivers/license_form", fiber.Map{
		"Title":          "Update License - TaxiFleet",
		"DriverUsername": c.Locals("driver_username"),
		"Action":         "/drivers/" + id + "/license-update",
		"Form":           form,
		"Errors":         errs,
	})
}

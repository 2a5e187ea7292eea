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

// ManufacturerHandler serves the manufacturer list, create, update, and
// delete pages.
type ManufacturerHandler struct {
	repo *repository.ManufacturerRepository
}

func NewManufacturerHandler(log logger.ILogger) *ManufacturerHandler {
	return &ManufacturerHandler{repo: repository.NewManufacturerRepository(log)}
}

// List renders the searchable, paginated manufacturer list. The search term
// arrives in the "name" query parameter.
func (h *ManufacturerHandler) List(c *fiber.Ctx) error {
	return renderList(c, listPage[models.Manufacturer]{
		title:     "Manufacturers - TaxiFleet",
		filterKey: "name",
		view:      "manufacturers/list",
		fetch:     h.repo.List,
	})
}

// ShowCreateForm renders an empty manufacturer form.
func (h *ManufacturerHandler) ShowCreateForm(c *fiber.Ctx) error {
	return h.renderForm(c, "/manufacturers/create", models.ManufacturerForm{}, nil)
}

// Create validates and persists a new manufacturer, redisplaying the form
// with field errors on validation failure.
func (h *ManufacturerHandler) Create(c *fiber.Ctx) error {
	form := models.ManufacturerForm{
		Name:    c.FormValue("name"),
		Country: c.FormValue("country"),
	}

	errs := forms.ValidateManufacturer(form)
	if errs.Has() {
		return h.renderForm(c, "/manufacturers/create", form, errs)
	}

	m := &models.Manufacturer{Name: form.Name, Country: form.Country}
	if err := h.repo.Create(c.Context(), m); err != nil {
		if repository.IsUniqueViolation(err) {
			errs["name"] = "a manufacturer with this name already exists"
			return h.renderForm(c, "/manufacturers/create", form, errs)
		}
		return err
	}

	return c.Redirect("/manufacturers", fiber.StatusSeeOther)
}

// ShowUpdateForm renders the form pre-filled with the manufacturer's fields.
func (h *ManufacturerHandler) ShowUpdateForm(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	m, err := h.repo.FindByID(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	form := models.ManufacturerForm{Name: m.Name, Country: m.Country}
	return h.renderForm(c, "/manufacturers/"+c.Params("id")+"/update", form, nil)
}

// Update validates and persists manufacturer edits.
func (h *ManufacturerHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	form := models.ManufacturerForm{
		Name:    c.FormValue("name"),
		Country: c.FormValue("country"),
	}

	errs := forms.ValidateManufacturer(form)
	if errs.Has() {
		return h.renderForm(c, "/manufacturers/"+c.Params("id")+"/update", form, errs)
	}

	m := &models.Manufacturer{ID: id, Name: form.Name, Country: form.Country}
	err = h.repo.Update(c.Context(), m)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		if repository.IsUniqueViolation(err) {
			errs["name"] = "a manufacturer with this name already exists"
			return h.renderForm(c, "/manufacturers/"+c.Params("id")+"/update", form, errs)
		}
		return err
	}

	return c.Redirect("/manufacturers", fiber.StatusSeeOther)
}

// Delete removes a manufacturer and redirects to the list. A manufacturer
// that still has cars trips ON DELETE RESTRICT and is reported as a
// conflict rather than deleted.
func (h *ManufacturerHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	err = h.repo.Delete(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusConflict,
				"manufacturer still has cars and cannot be deleted")
		}
		return err
	}

	return c.Redirect("/manufacturers", fiber.StatusSeeOther)
}

func (h *ManufacturerHandler) renderForm(c *fiber.Ctx, action string, form models.ManufacturerForm, errs forms.Errors) error {
	return c.Render("manufacturers/form", fiber.Map{
		"Title":          "Manufacturer - TaxiFleet",
		"DriverUsername": c.Locals("driver_username"),
		"Action":         action,
		"Form":           form,
		"Errors":         errs,
	})
}

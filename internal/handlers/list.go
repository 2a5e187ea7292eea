// Package handlers implements the HTTP request handlers for taxifleet.
// This file contains the generic searchable list page shared by all three
// entity types.
package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/taxifleet/internal/pagination"
)

// listPage describes how to render one entity's list page: which query
// parameter carries the search term, which view to render, and how to fetch
// the filtered, ordered records. One descriptor per entity type replaces the
// per-entity list handler boilerplate.
type listPage[T any] struct {
	title     string
	filterKey string // query parameter holding the search term
	view      string
	fetch     func(ctx context.Context, filter string) ([]T, error)
}

// renderList runs the shared list pipeline: read the filter and page
// parameters, fetch the matching ordered records, slice out the requested
// page, and build navigation links that carry the filter forward. The raw
// filter string is echoed back for the search box.
func renderList[T any](c *fiber.Ctx, lp listPage[T]) error {
	filter := c.Query(lp.filterKey)
	requested := c.QueryInt("page", 1)

	items, err := lp.fetch(c.Context(), filter)
	if err != nil {
		return err
	}

	page := pagination.Paginate(items, requested)
	params := pagination.Parse(string(c.Request().URI().QueryString()))

	return c.Render(lp.view, fiber.Map{
		"Title":          lp.title,
		"DriverUsername": c.Locals("driver_username"),
		"Items":          page.Items,
		"Page":           page.Number,
		"TotalPages":     page.TotalPages,
		"TotalItems":     page.TotalItems,
		"PageLinks":      pagination.Links(params, page.Number, page.TotalPages),
		"SearchKey":      lp.filterKey,
		"SearchValue":    filter,
	})
}

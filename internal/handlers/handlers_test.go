package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avissapr/taxifleet/internal/handlers"
	"github.com/avissapr/taxifleet/internal/logger"
)

// TestProtectedRoutes_RequireAuthentication sends unauthenticated requests
// to every protected route and asserts none of them ever answers with a
// success status; the auth gate redirects to /login before any handler or
// database access runs.
func TestProtectedRoutes_RequireAuthentication(t *testing.T) {
	app := fiber.New()
	store := session.New()
	handlers.RegisterRoutes(app, store, logger.NewNop())

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/manufacturers"},
		{http.MethodGet, "/manufacturers/create"},
		{http.MethodPost, "/manufacturers/create"},
		{http.MethodGet, "/manufacturers/1/update"},
		{http.MethodPost, "/manufacturers/1/update"},
		{http.MethodPost, "/manufacturers/1/delete"},
		{http.MethodGet, "/cars"},
		{http.MethodGet, "/cars/1"},
		{http.MethodGet, "/cars/create"},
		{http.MethodPost, "/cars/create"},
		{http.MethodGet, "/cars/1/update"},
		{http.MethodPost, "/cars/1/update"},
		{http.MethodPost, "/cars/1/delete"},
		{http.MethodPost, "/cars/1/assign-toggle"},
		{http.MethodGet, "/drivers"},
		{http.MethodGet, "/drivers/1"},
		{http.MethodGet, "/drivers/create"},
		{http.MethodPost, "/drivers/create"},
		{http.MethodGet, "/drivers/1/license-update"},
		{http.MethodPost, "/drivers/1/license-update"},
		{http.MethodPost, "/drivers/1/delete"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.NotEqual(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/login", resp.Header.Get("Location"))
		})
	}
}

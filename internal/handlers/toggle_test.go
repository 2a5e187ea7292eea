package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avissapr/taxifleet/internal/database"
	"github.com/avissapr/taxifleet/internal/handlers"
	"github.com/avissapr/taxifleet/internal/logger"
)

// toggleApp builds a minimal app with the toggle route behind a stub that
// injects the authenticated driver, standing in for the session middleware.
func toggleApp(driverID int) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("driver_id", driverID)
		c.Locals("driver_username", "driver")
		return c.Next()
	})

	carHandler := handlers.NewCarHandler(logger.NewNop())
	app.Post("/cars/:id/assign-toggle", carHandler.ToggleAssign)
	return app
}

func newToggleMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	oldDB := database.DB
	database.DB = mock
	t.Cleanup(func() { database.DB = oldDB })

	return mock
}

var (
	existsQuery     = regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM cars WHERE id = $1)")
	isAssignedQuery = regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM car_drivers WHERE driver_id = $1 AND car_id = $2)")
	addCarQuery     = regexp.QuoteMeta("INSERT INTO car_drivers (driver_id, car_id)")
	removeCarQuery  = regexp.QuoteMeta("DELETE FROM car_drivers WHERE driver_id = $1 AND car_id = $2")
)

func TestToggleAssign_AddsWhenNotMember(t *testing.T) {
	mock := newToggleMock(t)

	mock.ExpectQuery(existsQuery).WithArgs(7).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(isAssignedQuery).WithArgs(1, 7).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(addCarQuery).WithArgs(1, 7).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := toggleApp(1)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/cars/7/assign-toggle", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cars/7", resp.Header.Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleAssign_RemovesWhenMember(t *testing.T) {
	mock := newToggleMock(t)

	mock.ExpectQuery(existsQuery).WithArgs(7).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(isAssignedQuery).WithArgs(1, 7).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(removeCarQuery).WithArgs(1, 7).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	app := toggleApp(1)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/cars/7/assign-toggle", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cars/7", resp.Header.Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleAssign_MissingCarIsNotFound(t *testing.T) {
	mock := newToggleMock(t)

	mock.ExpectQuery(existsQuery).WithArgs(99).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	app := toggleApp(1)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/cars/99/assign-toggle", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleAssign_BadIDIsNotFound(t *testing.T) {
	app := toggleApp(1)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/cars/not-a-number/assign-toggle", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Package repository_test verifies the database access layer using pgxmock
// injected through the database.DB interface, following table-driven
// patterns.
package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avissapr/taxifleet/internal/database"
	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/models"
	"github.com/avissapr/taxifleet/internal/repository"
)

var testTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// newMockDB swaps the global pool for a pgxmock pool and restores it when
// the test finishes.
func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	oldDB := database.DB
	database.DB = mock
	t.Cleanup(func() { database.DB = oldDB })

	return mock
}

func TestManufacturerRepository_List(t *testing.T) {
	tests := []struct {
		name      string
		filter    string
		mockSetup func(pgxmock.PgxPoolIface)
		wantNames []string
	}{
		{
			name:   "no filter returns full ordered set",
			filter: "",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "country", "created_at"}).
					AddRow(1, "Ford", "USA", testTime).
					AddRow(2, "Bombastic", "US", testTime)

				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT id, name, country, created_at FROM manufacturers ORDER BY id",
				)).WillReturnRows(rows)
			},
			wantNames: []string{"Ford", "Bombastic"},
		},
		{
			name:   "filter is pushed down as case-insensitive ILIKE",
			filter: "bomB",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "country", "created_at"}).
					AddRow(2, "Bombastic", "US", testTime)

				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT id, name, country, created_at FROM manufacturers WHERE name ILIKE $1 ORDER BY id",
				)).WithArgs("%bomB%").WillReturnRows(rows)
			},
			wantNames: []string{"Bombastic"},
		},
		{
			name:   "wildcard characters in the term are escaped to literals",
			filter: "100%",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "country", "created_at"}).
					AddRow(3, "100% Electric", "NL", testTime)

				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT id, name, country, created_at FROM manufacturers WHERE name ILIKE $1 ORDER BY id",
				)).WithArgs(`%100\%%`).WillReturnRows(rows)
			},
			wantNames: []string{"100% Electric"},
		},
		{
			name:   "no match returns empty set",
			filter: "zzz",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "country", "created_at"})

				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT id, name, country, created_at FROM manufacturers WHERE name ILIKE $1 ORDER BY id",
				)).WithArgs("%zzz%").WillReturnRows(rows)
			},
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockDB(t)
			tt.mockSetup(mock)

			repo := repository.NewManufacturerRepository(logger.NewNop())
			manufacturers, err := repo.List(context.Background(), tt.filter)

			require.NoError(t, err)
			var names []string
			for _, m := range manufacturers {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestManufacturerRepository_FindByID_NotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, country, created_at FROM manufacturers WHERE id = $1",
	)).WithArgs(99).WillReturnError(pgx.ErrNoRows)

	repo := repository.NewManufacturerRepository(logger.NewNop())
	m, err := repo.FindByID(context.Background(), 99)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManufacturerRepository_Create(t *testing.T) {
	mock := newMockDB(t)

	rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(7, testTime)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO manufacturers (name, country)")).
		WithArgs("Bombastic", "US").
		WillReturnRows(rows)

	repo := repository.NewManufacturerRepository(logger.NewNop())
	m := &models.Manufacturer{Name: "Bombastic", Country: "US"}
	require.NoError(t, repo.Create(context.Background(), m))

	assert.Equal(t, 7, m.ID)
	assert.Equal(t, "Bombastic US", m.Display())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManufacturerRepository_Delete(t *testing.T) {
	t.Run("existing row", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM manufacturers WHERE id = $1")).
			WithArgs(3).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := repository.NewManufacturerRepository(logger.NewNop())
		assert.NoError(t, repo.Delete(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row reports not found", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM manufacturers WHERE id = $1")).
			WithArgs(99).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := repository.NewManufacturerRepository(logger.NewNop())
		assert.ErrorIs(t, repo.Delete(context.Background(), 99), repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

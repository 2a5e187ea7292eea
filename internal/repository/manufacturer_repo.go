package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/avissapr/taxifleet/internal/database"
	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/models"
)

// ManufacturerRepository handles manufacturer CRUD and list queries.
type ManufacturerRepository struct {
	log logger.ILogger
}

func NewManufacturerRepository(log logger.ILogger) *ManufacturerRepository {
	return &ManufacturerRepository{log: log}
}

// List returns manufacturers ordered by id ascending. A non-empty name term
// filters with a case-insensitive substring match pushed down as ILIKE.
func (r *ManufacturerRepository) List(ctx context.Context, name string) ([]models.Manufacturer, error) {
	q := psql.Select("id", "name", "country", "created_at").
		From("manufacturers").
		OrderBy("id")
	if name != "" {
		q = q.Where(sq.ILike{"name": containsPattern(name)})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list manufacturers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var manufacturers []models.Manufacturer
	for rows.Next() {
		var m models.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.Country, &m.CreatedAt); err != nil {
			return nil, err
		}
		manufacturers = append(manufacturers, m)
	}

	return manufacturers, rows.Err()
}

// FindByID retrieves a single manufacturer, or ErrNotFound.
func (r *ManufacturerRepository) FindByID(ctx context.Context, id int) (*models.Manufacturer, error) {
	query := `SELECT id, name, country, created_at FROM manufacturers WHERE id = $1`

	var m models.Manufacturer
	err := database.DB.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Country, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Create inserts a new manufacturer and populates its ID and CreatedAt.
func (r *ManufacturerRepository) Create(ctx context.Context, m *models.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (name, country)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return database.DB.QueryRow(ctx, query, m.Name, m.Country).Scan(&m.ID, &m.CreatedAt)
}

// Update rewrites the name and country of an existing manufacturer.
func (r *ManufacturerRepository) Update(ctx context.Context, m *models.Manufacturer) error {
	query := `UPDATE manufacturers SET name = $1, country = $2 WHERE id = $3`

	tag, err := database.DB.Exec(ctx, query, m.Name, m.Country, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a manufacturer. Manufacturers that still have cars are
// protected by ON DELETE RESTRICT; the resulting foreign-key violation is
// returned unchanged for the handler to classify.
func (r *ManufacturerRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of manufacturers. Used on the home page.
func (r *ManufacturerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := database.DB.QueryRow(ctx, `SELECT COUNT(*) FROM manufacturers`).Scan(&count)
	return count, err
}

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

// CarRepository handles car CRUD, list queries, and the assigned-drivers
// side of the car detail view.
type CarRepository struct {
	log logger.ILogger
}

func NewCarRepository(log logger.ILogger) *CarRepository {
	return &CarRepository{log: log}
}

// carColumns are the columns selected by every car query that eager-joins
// the manufacturer, in scan order.
var carColumns = []string{
	"c.id", "c.model", "c.manufacturer_id", "c.created_at",
	"m.name", "m.country", "m.created_at",
}

func scanCar(row pgx.Row) (models.Car, error) {
	var c models.Car
	err := row.Scan(
		&c.ID, &c.Model, &c.ManufacturerID, &c.CreatedAt,
		&c.Manufacturer.Name, &c.Manufacturer.Country, &c.Manufacturer.CreatedAt,
	)
	c.Manufacturer.ID = c.ManufacturerID
	return c, err
}

// List returns cars ordered by id ascending, each with its manufacturer
// joined in the same query. A non-empty model term filters with a
// case-insensitive substring match pushed down as ILIKE.
func (r *CarRepository) List(ctx context.Context, model string) ([]models.Car, error) {
	q := psql.Select(carColumns...).
		From("cars c").
		Join("manufacturers m ON m.id = c.manufacturer_id").
		OrderBy("c.id")
	if model != "" {
		q = q.Where(sq.ILike{"c.model": containsPattern(model)})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cars []models.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}

	return cars, rows.Err()
}

// FindByID retrieves one car with its manufacturer and its assigned drivers.
// The drivers come back in a single batched query, not one per row.
func (r *CarRepository) FindByID(ctx context.Context, id int) (*models.Car, error) {
	query := `
		SELECT c.id, c.model, c.manufacturer_id, c.created_at,
		       m.name, m.country, m.created_at
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE c.id = $1
	`

	car, err := scanCar(database.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	driversQuery := `
		SELECT d.id, d.username, d.license_number, d.first_name, d.last_name, d.created_at
		FROM drivers d
		JOIN car_drivers cd ON cd.driver_id = d.id
		WHERE cd.car_id = $1
		ORDER BY d.id
	`

	rows, err := database.DB.Query(ctx, driversQuery, id)
	if err != nil {
		r.log.Error("failed to load car drivers", logger.Error(err), logger.Int("car_id", id))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Username, &d.LicenseNumber, &d.FirstName, &d.LastName, &d.CreatedAt); err != nil {
			return nil, err
		}
		car.Drivers = append(car.Drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &car, nil
}

// Exists reports whether a car with the given id is persisted. The
// assignment toggle validates its target with this before mutating.
func (r *CarRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cars WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Create inserts a new car and populates its ID and CreatedAt.
func (r *CarRepository) Create(ctx context.Context, c *models.Car) error {
	query := `
		INSERT INTO cars (model, manufacturer_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return database.DB.QueryRow(ctx, query, c.Model, c.ManufacturerID).Scan(&c.ID, &c.CreatedAt)
}

// Update rewrites the model and manufacturer of an existing car.
func (r *CarRepository) Update(ctx context.Context, c *models.Car) error {
	query := `UPDATE cars SET model = $1, manufacturer_id = $2 WHERE id = $3`

	tag, err := database.DB.Exec(ctx, query, c.Model, c.ManufacturerID, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a car. Assignment rows go with it via ON DELETE CASCADE.
func (r *CarRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of cars. Used on the home page.
func (r *CarRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := database.DB.QueryRow(ctx, `SELECT COUNT(*) FROM cars`).Scan(&count)
	return count, err
}

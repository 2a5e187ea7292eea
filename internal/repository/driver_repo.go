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

// DriverRepository handles driver CRUD, authentication lookups, and the
// driver↔car assignment relation.
type DriverRepository struct {
	log logger.ILogger
}

func NewDriverRepository(log logger.ILogger) *DriverRepository {
	return &DriverRepository{log: log}
}

// List returns drivers ordered by id ascending. A non-empty username term
// filters with a case-insensitive substring match pushed down as ILIKE.
// The password hash is never selected by list queries.
func (r *DriverRepository) List(ctx context.Context, username string) ([]models.Driver, error) {
	q := psql.Select("id", "username", "license_number", "first_name", "last_name", "created_at").
		From("drivers").
		OrderBy("id")
	if username != "" {
		q = q.Where(sq.ILike{"username": containsPattern(username)})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var drivers []models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Username, &d.LicenseNumber, &d.FirstName, &d.LastName, &d.CreatedAt); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, rows.Err()
}

// FindByID retrieves one driver together with every assigned car and that
// car's manufacturer, batched into one joined query instead of a fetch per
// car.
func (r *DriverRepository) FindByID(ctx context.Context, id int) (*models.Driver, error) {
	query := `
		SELECT id, username, license_number, first_name, last_name, created_at
		FROM drivers
		WHERE id = $1
	`

	var d models.Driver
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Username, &d.LicenseNumber, &d.FirstName, &d.LastName, &d.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	carsQuery := `
		SELECT c.id, c.model, c.manufacturer_id, c.created_at,
		       m.name, m.country, m.created_at
		FROM cars c
		JOIN car_drivers cd ON cd.car_id = c.id
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE cd.driver_id = $1
		ORDER BY c.id
	`

	rows, err := database.DB.Query(ctx, carsQuery, id)
	if err != nil {
		r.log.Error("failed to load driver cars", logger.Error(err), logger.Int("driver_id", id))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		d.Cars = append(d.Cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &d, nil
}

// FindByUsername retrieves a driver by login identity, including the
// password hash for credential verification.
func (r *DriverRepository) FindByUsername(ctx context.Context, username string) (*models.Driver, error) {
	query := `
		SELECT id, username, password_hash, license_number, first_name, last_name, created_at
		FROM drivers
		WHERE username = $1
	`

	var d models.Driver
	err := database.DB.QueryRow(ctx, query, username).Scan(
		&d.ID, &d.Username, &d.PasswordHash, &d.LicenseNumber, &d.FirstName, &d.LastName, &d.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// Create inserts a new driver. Password must be pre-hashed with bcrypt.
// Duplicate usernames or license numbers surface as unique violations.
func (r *DriverRepository) Create(ctx context.Context, d *models.Driver) error {
	query := `
		INSERT INTO drivers (username, password_hash, license_number, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return database.DB.QueryRow(ctx, query,
		d.Username, d.PasswordHash, d.LicenseNumber, d.FirstName, d.LastName,
	).Scan(&d.ID, &d.CreatedAt)
}

// UpdateLicense rewrites a driver's license number. The dedicated license
// form edits nothing else.
func (r *DriverRepository) UpdateLicense(ctx context.Context, id int, licenseNumber string) error {
	query := `UPDATE drivers SET license_number = $1 WHERE id = $2`

	tag, err := database.DB.Exec(ctx, query, licenseNumber, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a driver. Assignment rows go with it via ON DELETE CASCADE.
func (r *DriverRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of drivers. Used on the home page.
func (r *DriverRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := database.DB.QueryRow(ctx, `SELECT COUNT(*) FROM drivers`).Scan(&count)
	return count, err
}

// AddCar assigns a car to a driver. ON CONFLICT DO NOTHING makes the insert
// idempotent at the constraint level, so two toggles racing past the
// membership read can never produce a duplicate row; the losing toggle is
// simply a no-op. That read-then-write race is accepted behavior.
func (r *DriverRepository) AddCar(ctx context.Context, driverID, carID int) error {
	query := `
		INSERT INTO car_drivers (driver_id, car_id)
		VALUES ($1, $2)
		ON CONFLICT (driver_id, car_id) DO NOTHING
	`

	_, err := database.DB.Exec(ctx, query, driverID, carID)
	return err
}

// RemoveCar unassigns a car from a driver. Removing a non-member is a no-op.
func (r *DriverRepository) RemoveCar(ctx context.Context, driverID, carID int) error {
	query := `DELETE FROM car_drivers WHERE driver_id = $1 AND car_id = $2`

	_, err := database.DB.Exec(ctx, query, driverID, carID)
	return err
}

// IsAssigned reports current membership of the driver↔car relation.
func (r *DriverRepository) IsAssigned(ctx context.Context, driverID, carID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM car_drivers WHERE driver_id = $1 AND car_id = $2)`

	var assigned bool
	err := database.DB.QueryRow(ctx, query, driverID, carID).Scan(&assigned)
	return assigned, err
}

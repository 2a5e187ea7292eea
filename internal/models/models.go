// Package models defines the domain entities and form DTOs for taxifleet.
// Entities map to PostgreSQL tables; form DTOs carry user input from the
// server-rendered forms into validation and the repositories.
package models

import "time"

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// Manufacturer represents a car maker.
//
// Database Table: manufacturers
type Manufacturer struct {
	ID        int       `db:"id"`         // Primary key, auto-increment
	Name      string    `db:"name"`       // Unique display name
	Country   string    `db:"country"`    // Country of origin
	CreatedAt time.Time `db:"created_at"` // Row creation timestamp
}

// Display returns the human-readable form of a manufacturer, e.g.
// "Bombastic US".
func (m Manufacturer) Display() string {
	return m.Name + " " + m.Country
}

// Car represents a vehicle in the fleet. Every car belongs to exactly one
// manufacturer and may have any number of drivers assigned through the
// car_drivers relation.
//
// Database Table: cars
type Car struct {
	ID             int       `db:"id"`              // Primary key
	Model          string    `db:"model"`           // Model name
	ManufacturerID int       `db:"manufacturer_id"` // Foreign key to manufacturers.id
	CreatedAt      time.Time `db:"created_at"`      // Row creation timestamp

	// Manufacturer is eager-loaded by list and detail queries.
	Manufacturer Manufacturer
	// Drivers currently assigned to this car. Populated on the detail view.
	Drivers []Driver
}

// Driver represents a driver account. The username doubles as the login
// identity; PasswordHash is a bcrypt hash and must never be rendered.
//
// Database Table: drivers
type Driver struct {
	ID            int       `db:"id"`             // Primary key
	Username      string    `db:"username"`       // Unique, used for login
	PasswordHash  string    `db:"password_hash"`  // bcrypt hashed password
	LicenseNumber string    `db:"license_number"` // Unique, format-validated
	FirstName     string    `db:"first_name"`     // Optional display field
	LastName      string    `db:"last_name"`      // Optional display field
	CreatedAt     time.Time `db:"created_at"`     // Row creation timestamp

	// Cars assigned to this driver, each with its manufacturer eager-loaded.
	// Populated on the detail view.
	Cars []Car
}

// FullName returns "First Last", or the username when neither name is set.
func (d Driver) FullName() string {
	switch {
	case d.FirstName == "" && d.LastName == "":
		return d.Username
	case d.FirstName == "":
		return d.LastName
	case d.LastName == "":
		return d.FirstName
	default:
		return d.FirstName + " " + d.LastName
	}
}

// ============================================================================
// Data Transfer Objects (DTOs) - Form Input
// ============================================================================

// LoginForm carries credentials from the login form.
type LoginForm struct {
	Username string
	Password string
}

// ManufacturerForm carries manufacturer create/update input.
type ManufacturerForm struct {
	Name    string
	Country string
}

// CarForm carries car create/update input. ManufacturerID arrives as the raw
// form value and is parsed/validated in forms.
type CarForm struct {
	Model          string
	ManufacturerID string
}

// DriverForm carries driver creation input.
type DriverForm struct {
	Username      string
	Password      string
	LicenseNumber string
	FirstName     string
	LastName      string
}

// LicenseUpdateForm carries the single-field driver license update. Mirrors
// the dedicated license-update form: no other driver field is editable there.
type LicenseUpdateForm struct {
	LicenseNumber string
}

// Package forms validates user input from the server-rendered forms.
// All validation errors are field-scoped and safe to show to users.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avissapr/taxifleet/internal/models"
)

// Errors maps a form field name to its validation message. An empty map
// means the input is valid.
type Errors map[string]string

// Has reports whether any field failed validation.
func (e Errors) Has() bool { return len(e) > 0 }

// ValidateLicenseNumber enforces the driver license format: exactly
// 8 characters, the first 3 uppercase ASCII letters, the last 5 ASCII digits.
// The returned error names the rule that was violated.
func ValidateLicenseNumber(license string) error {
	if len(license) != 8 {
		return fmt.Errorf("license number must be exactly 8 characters long")
	}
	for _, c := range license[:3] {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("first 3 characters must be uppercase letters")
		}
	}
	for _, c := range license[3:] {
		if c < '0' || c > '9' {
			return fmt.Errorf("last 5 characters must be digits")
		}
	}
	return nil
}

// ValidateManufacturer checks manufacturer create/update input.
func ValidateManufacturer(form models.ManufacturerForm) Errors {
	errs := Errors{}
	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(form.Country) == "" {
		errs["country"] = "country is required"
	}
	return errs
}

// ValidateCar checks car create/update input and returns the parsed
// manufacturer id when it is a well-formed reference.
func ValidateCar(form models.CarForm) (manufacturerID int, errs Errors) {
	errs = Errors{}
	if strings.TrimSpace(form.Model) == "" {
		errs["model"] = "model is required"
	}

	id, err := strconv.Atoi(form.ManufacturerID)
	if err != nil || id <= 0 {
		errs["manufacturer"] = "manufacturer is required"
		return 0, errs
	}
	return id, errs
}

// ValidateDriver checks driver creation input.
func ValidateDriver(form models.DriverForm) Errors {
	errs := Errors{}
	if strings.TrimSpace(form.Username) == "" {
		errs["username"] = "username is required"
	}
	if len(form.Password) < 8 {
		errs["password"] = "password must be at least 8 characters"
	}
	if err := ValidateLicenseNumber(form.LicenseNumber); err != nil {
		errs["license_number"] = err.Error()
	}
	return errs
}

// ValidateLicenseUpdate checks the single-field license update form.
func ValidateLicenseUpdate(form models.LicenseUpdateForm) Errors {
	errs := Errors{}
	if err := ValidateLicenseNumber(form.LicenseNumber); err != nil {
		errs["license_number"] = err.Error()
	}
	return errs
}

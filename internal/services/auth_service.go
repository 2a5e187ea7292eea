// Package services provides the business logic layer for taxifleet.
// This file implements driver authentication with bcrypt credential checks.
package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avissapr/taxifleet/internal/logger"
	"github.com/avissapr/taxifleet/internal/models"
	"github.com/avissapr/taxifleet/internal/repository"
)

// BcryptCost is the work factor for driver password hashes.
const BcryptCost = 12

// AuthService verifies driver credentials against the drivers table.
//
// The same "invalid username or password" error is returned for unknown
// usernames and wrong passwords so login responses do not reveal which
// usernames exist.
type AuthService struct {
	driverRepo *repository.DriverRepository
}

func NewAuthService(log logger.ILogger) *AuthService {
	return &AuthService{
		driverRepo: repository.NewDriverRepository(log),
	}
}

// Authenticate looks up the driver by username and compares the supplied
// password against the stored bcrypt hash. bcrypt's comparison is
// constant-time.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Driver, error) {
	driver, err := s.driverRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(driver.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	return driver, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/cloudpeak/authgate/internal/models"
)

// UserRepository defines operations for storing/retrieving user credentials
type UserRepository interface {
	// CreateUser inserts a new record conditioned on the email not already
	// existing. It returns ErrUserExists when the condition fails; duplicate
	// resolution happens atomically at the store, never by check-then-insert.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves the record for an email.
	// It returns ErrUserNotFound if no record exists.
	GetUser(ctx context.Context, email string) (*models.User, error)

	// MarkVerified flips verified to true, conditioned on the record existing
	// and its stored verifyToken matching the supplied one. It returns
	// ErrVerifyTokenMismatch when either part of the condition fails.
	MarkVerified(ctx context.Context, email, verifyToken string) error
}

// Common errors
var ErrUserNotFound = fmt.Errorf("user not found")
var ErrUserExists = fmt.Errorf("user already exists")
var ErrVerifyTokenMismatch = fmt.Errorf("verification token mismatch")

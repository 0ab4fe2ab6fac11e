// Package users declares the repository contract for user accounts.
package users

import (
	"context"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/models"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	// Create inserts a new user and returns it with the generated id.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user registered under email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

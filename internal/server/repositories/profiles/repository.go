// Package profiles declares the repository contract for dietary profiles.
package profiles

import (
	"context"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/models"
)

// Repository reads the derived daily-rate data for a user.
type Repository interface {
	// FindByUserID returns the profile stored for userID, or
	// common.ErrorNotFound when none exists.
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

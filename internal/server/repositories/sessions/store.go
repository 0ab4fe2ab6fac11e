// Package sessions declares the session store contract: a durable mapping
// from the current refresh-token value to session metadata.
package sessions

import (
	"context"
	"time"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/models"
)

// Store defines operations over refresh sessions. A subject may hold any
// number of concurrent sessions, one per login; each is keyed by its current
// refresh token value. Storage failures are wrapped and propagated, never
// swallowed.
type Store interface {
	// Create inserts a new session for userID keyed by token.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error

	// FindByToken looks up a session by its current token value and returns
	// common.ErrorNotFound when no session holds that value.
	FindByToken(ctx context.Context, token string) (*models.Session, error)

	// Rotate atomically replaces oldToken with newToken and renews the expiry
	// on the same session. The swap is conditional on oldToken still being
	// the stored value: when two rotations race, exactly one succeeds and the
	// other gets common.ErrorNotFound. A rotated-away token can therefore
	// never be exchanged twice.
	Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) error

	// DeleteByToken removes the session holding token. Absence is not an
	// error.
	DeleteByToken(ctx context.Context, token string) error
}

package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/dbx"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/models"
)

// PostgresStore implements Store over dbx.DBTX (satisfied by *sql.DB or
// *sql.Tx). The sessions table keeps refresh_token unique, so the conditional
// UPDATE in Rotate is the compare-and-swap.
type PostgresStore struct {
	db dbx.DBTX
}

func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.ExecContext(ctx, query, userID, token, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, user_id, refresh_token, expires_at, created_at
		FROM sessions
		WHERE refresh_token = $1
	`

	session := &models.Session{}
	err := s.db.QueryRowContext(ctx, query, token).
		Scan(&session.ID, &session.UserID, &session.Token, &session.Expires, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (s *PostgresStore) Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) error {
	query := `
		UPDATE sessions
		SET refresh_token = $1, expires_at = $2
		WHERE refresh_token = $3
	`

	res, err := s.db.ExecContext(ctx, query, newToken, expiresAt, oldToken)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	// zero rows means oldToken was already rotated away or deleted; the
	// caller lost the race
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (s *PostgresStore) DeleteByToken(ctx context.Context, token string) error {
	query := `
		DELETE FROM sessions
		WHERE refresh_token = $1
	`
	if _, err := s.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

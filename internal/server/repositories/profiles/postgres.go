package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/dbx"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT user_id, daily_rate_kcal, not_allowed_products
		FROM daily_rates
		WHERE user_id = $1
	`

	profile := &models.Profile{}
	var products []byte
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&profile.UserID, &profile.DailyRateKcal, &products)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	// not_allowed_products is a jsonb array of product names
	if len(products) > 0 {
		if err := json.Unmarshal(products, &profile.NotAllowedProducts); err != nil {
			return nil, fmt.Errorf("decoding products: %w", err)
		}
	}

	return profile, nil
}

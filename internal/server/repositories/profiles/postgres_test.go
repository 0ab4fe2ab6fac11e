package profiles

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestFindByUserID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+user_id,\s*daily_rate_kcal,\s*not_allowed_products\s+FROM\s+daily_rates\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"user_id", "daily_rate_kcal", "not_allowed_products"}).
		AddRow("u1", 1840, []byte(`["sugar","white bread"]`))

	mock.ExpectQuery(q).
		WithArgs("u1").
		WillReturnRows(rows)

	profile, err := repo.FindByUserID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.DailyRateKcal != 1840 {
		t.Fatalf("unexpected kcal: %d", profile.DailyRateKcal)
	}
	if len(profile.NotAllowedProducts) != 2 || profile.NotAllowedProducts[0] != "sugar" {
		t.Fatalf("unexpected products: %v", profile.NotAllowedProducts)
	}
}

func TestFindByUserID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+user_id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUserID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestFindByUserID_BadProductsPayload(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id", "daily_rate_kcal", "not_allowed_products"}).
		AddRow("u1", 1700, []byte(`{broken`))

	mock.ExpectQuery(`SELECT\s+user_id`).
		WithArgs("u1").
		WillReturnRows(rows)

	if _, err := repo.FindByUserID(context.Background(), "u1"); err == nil {
		t.Fatalf("expected decode error, got nil")
	}
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\b.*RETURNING\s+id,\s*created_at\s*$`

	rows := sqlmock.NewRows([]string{"id", "created_at"}).
		AddRow("u1", time.Now())

	mock.ExpectQuery(q).
		WithArgs("a@b.c", "alice", "hash").
		WillReturnRows(rows)

	user, err := repo.Create(context.Background(), &models.User{
		Email:        "a@b.c",
		Username:     "alice",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("expected generated id, got %+v", user)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("a@b.c", "alice", "hash").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	_, err := repo.Create(context.Background(), &models.User{
		Email:        "a@b.c",
		Username:     "alice",
		PasswordHash: "hash",
	})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*email,\s*username,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "created_at"}).
		AddRow("u1", "a@b.c", "alice", "hash", time.Now())

	mock.ExpectQuery(q).
		WithArgs("a@b.c").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "a@b.c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || user.Username != "alice" {
		t.Fatalf("unexpected row: %+v", user)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*email`).
		WithArgs("nobody@b.c").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@b.c")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*email`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

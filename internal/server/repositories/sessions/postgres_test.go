package sessions

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresStore(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+sessions\b.*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`

	mock.ExpectExec(q).
		WithArgs("u1", "tok123", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Create(context.Background(), "u1", "tok123", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+sessions`).
		WithArgs("u1", "tok123", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	err := store.Create(context.Background(), "u1", "tok123", time.Now().Add(time.Hour))
	if err == nil || !strings.Contains(err.Error(), "db down") {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByToken_Found(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*user_id,\s*refresh_token,\s*expires_at,\s*created_at\s+FROM\s+sessions\s+WHERE\s+refresh_token\s*=\s*\$1\s*$`

	expires := time.Now().Add(10 * time.Minute)
	created := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "refresh_token", "expires_at", "created_at"}).
		AddRow("s1", "u1", "tok123", expires, created)

	mock.ExpectQuery(q).
		WithArgs("tok123").
		WillReturnRows(rows)

	got, err := store.FindByToken(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "u1" || got.Token != "tok123" || !got.Expires.Equal(expires) {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestFindByToken_NotFound(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindByToken(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestRotate_Success(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+sessions\s+SET\s+refresh_token\s*=\s*\$1,\s*expires_at\s*=\s*\$2\s+WHERE\s+refresh_token\s*=\s*\$3\s*$`

	mock.ExpectExec(q).
		WithArgs("new-tok", sqlmock.AnyArg(), "old-tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Rotate(context.Background(), "old-tok", "new-tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRotate_StaleToken(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	// the conditional update matched no row: the token was already rotated
	mock.ExpectExec(`UPDATE\s+sessions`).
		WithArgs("new-tok", sqlmock.AnyArg(), "already-used").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Rotate(context.Background(), "already-used", "new-tok", time.Now().Add(time.Hour))
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteByToken_Idempotent(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+sessions\s+WHERE\s+refresh_token\s*=\s*\$1\s*$`

	// zero rows affected is still success
	mock.ExpectExec(q).
		WithArgs("absent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteByToken(context.Background(), "absent"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

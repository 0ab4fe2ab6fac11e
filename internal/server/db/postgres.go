// Package db opens the PostgreSQL connection pool and applies the embedded
// schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/migrations"
)

// NewPostgresDB opens a pgx-backed *sql.DB for the given DSN, verifies the
// connection, and migrates the schema up.
func NewPostgresDB(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := runMigrations(ctx, conn); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return conn, nil
}

func runMigrations(ctx context.Context, conn *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, conn, ".")
}

package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/phonebook/phonebook/internal/pkg/logger"
)

// Schema is the idempotent DDL for the persons table.
//
//go:embed schema.sql
var Schema string

// EnsureSchema creates the persons table and its indexes if they are missing.
// It runs over database/sql with the lib/pq driver so it can be used before the pgx pool exists.
func EnsureSchema(ctx context.Context, url string) error {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return fmt.Errorf("failed to connect for schema bootstrap: %w", err)
	}
	defer db.Close()

	return applySchema(ctx, db)
}

func applySchema(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, Schema); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	var tables int
	if err := db.GetContext(ctx, &tables,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'persons'`); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}
	if tables == 0 {
		return fmt.Errorf("persons table missing after schema bootstrap")
	}

	logger.Info("schema ready", zap.String("table", "persons"))
	return nil
}

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/phonebook/phonebook/internal/config"
	"github.com/phonebook/phonebook/internal/pkg/database"
)

// getTestDB returns a database connection for integration tests.
// The test is skipped when POSTGRES_TEST_URL is not set or unreachable.
func getTestDB(t *testing.T) *database.PostgresDB {
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("Skipping integration test: POSTGRES_TEST_URL not set")
		return nil
	}

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, url); err != nil {
		t.Skipf("Skipping integration test: failed to prepare schema: %v", err)
		return nil
	}

	db, err := database.NewPostgres(ctx, config.DatabaseConfig{URL: url, MaxConns: 5, MinConns: 1})
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
		return nil
	}

	t.Cleanup(db.Close)
	return db
}

// cleanupPersons removes test persons from the database
func cleanupPersons(t *testing.T, db *database.PostgresDB, names ...string) {
	ctx := context.Background()
	for _, name := range names {
		_, _ = db.Pool.Exec(ctx, "DELETE FROM persons WHERE name = $1", name)
	}
}

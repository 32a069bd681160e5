package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonebook/phonebook/internal/config"
	"github.com/phonebook/phonebook/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{
		Level:  "error",
		Format: "console",
	})
	os.Exit(m.Run())
}

func TestTruncateSQL(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		maxLen   int
		expected string
	}{
		{"short SQL unchanged", "SELECT * FROM persons", 100, "SELECT * FROM persons"},
		{"exactly at max length", "SELECT * FROM persons", 21, "SELECT * FROM persons"},
		{"truncated with ellipsis", "SELECT * FROM persons WHERE id = $1", 21, "SELECT * FROM persons..."},
		{"empty string", "", 10, ""},
		{"max length of 0", "SELECT", 0, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateSQL(tt.sql, tt.maxLen))
		})
	}
}

func TestQueryTracer(t *testing.T) {
	tracer := &queryTracer{}

	t.Run("start stores time and sql", func(t *testing.T) {
		ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})

		start, ok := ctx.Value(queryStartKey{}).(time.Time)
		assert.True(t, ok)
		assert.False(t, start.IsZero())
		assert.Equal(t, "SELECT 1", ctx.Value(querySQLKey{}))
	})

	t.Run("end without start is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
		})
	})

	t.Run("end tolerates failed queries", func(t *testing.T) {
		ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "DELETE FROM persons"})
		assert.NotPanics(t, func() {
			tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})
		})
	})
}

func TestNewPostgres(t *testing.T) {
	t.Run("rejects an unparsable url", func(t *testing.T) {
		_, err := NewPostgres(context.Background(), config.DatabaseConfig{URL: "postgres://%zz"})
		assert.Error(t, err)
	})

	t.Run("connects when a test database is configured", func(t *testing.T) {
		url := os.Getenv("POSTGRES_TEST_URL")
		if url == "" {
			t.Skip("Skipping integration test: POSTGRES_TEST_URL not set")
		}

		db, err := NewPostgres(context.Background(), config.DatabaseConfig{URL: url, MaxConns: 2})
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, EnsureSchema(context.Background(), url))
		assert.NoError(t, db.Ping(context.Background()))
	})
}

func TestNewRedis(t *testing.T) {
	_, err := NewRedis(context.Background(), config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}

func TestSchemaIsIdempotent(t *testing.T) {
	assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS persons")
	assert.Contains(t, Schema, "CREATE INDEX IF NOT EXISTS idx_persons_name")
	assert.NotContains(t, Schema, "UNIQUE")
}

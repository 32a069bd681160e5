package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
)

func TestDefaultPathNormalizer(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/api/persons", "/api/persons"},
		{"/api/persons/5c0d2a4e-8f1b-4b8e-9d3a-2f6c7e1a9b10", "/api/persons/:id"},
		{"/api/persons/abc", "/api/persons/abc"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultPathNormalizer(tt.path))
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.GetStatusCode(err))
		},
	})
	app.Use(NewMetricsMiddleware(DefaultMetricsConfig()).Handler())
	app.Get("/api/persons/:id", func(c *fiber.Ctx) error {
		return apperrors.NotFound("person")
	})

	counter := httpRequestsTotal.WithLabelValues("GET", "/api/persons/:id", "404")
	before := testutil.ToFloat64(counter)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/persons/5c0d2a4e-8f1b-4b8e-9d3a-2f6c7e1a9b10", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordPersonMutation(t *testing.T) {
	counter := personMutations.WithLabelValues("create")
	before := testutil.ToFloat64(counter)

	RecordPersonMutation("create")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{"validation", apperrors.Validation("name missing"), 400, `{"error":"name missing"}`},
		{"duplicate", apperrors.Duplicate(apperrors.MessageNameNotUnique), 400, `{"error":"name must be unique"}`},
		{"cast", apperrors.Cast("abc"), 400, `{"error":"malformatted id"}`},
		{"not found", apperrors.NotFound("person"), 404, ``},
		{"unknown endpoint", apperrors.UnknownEndpoint(), 404, `{"error":"unknown endpoint"}`},
		{"rate limited", apperrors.RateLimited(), 429, `{"error":"rate limit exceeded"}`},
		{"wrapped app error", joinWithContext(apperrors.Cast("1")), 400, `{"error":"malformatted id"}`},
		{"unexpected", errors.New("pq: password authentication failed"), 500, `{"error":"internal server error"}`},
		{"internal app error", apperrors.Internal("secret detail"), 500, `{"error":"internal server error"}`},
		{"fiber not found", fiber.ErrNotFound, 404, `{"error":"unknown endpoint"}`},
		{"fiber method not allowed", fiber.ErrMethodNotAllowed, 405, `{"error":"Method Not Allowed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop(), false)})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.expectedBody, string(body))
		})
	}
}

func TestErrorHandler_LogsEveryError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedCode  int
		expectedLevel zapcore.Level
	}{
		{"not found", apperrors.NotFound("person"), 404, zapcore.DebugLevel},
		{"cast", apperrors.Cast("abc"), 400, zapcore.DebugLevel},
		{"unexpected", errors.New("connection reset"), 500, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core), false)})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)
			assert.Equal(t, int64(tt.expectedCode), entries[0].ContextMap()["status"])
		})
	}
}

func joinWithContext(err error) error {
	return errors.Join(errors.New("context"), err)
}

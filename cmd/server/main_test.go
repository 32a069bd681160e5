package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phonebook/phonebook/internal/config"
	"github.com/phonebook/phonebook/internal/handler"
	"github.com/phonebook/phonebook/internal/service"
	"github.com/phonebook/phonebook/internal/testutil"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestDeps(cfg *config.Config) *Dependencies {
	svc := service.NewPersonService(testutil.NewMemoryPersonRepository())
	return &Dependencies{
		Config:        cfg,
		Logger:        zap.NewNop(),
		PersonService: svc,
		Handlers: &Handlers{
			Health:  handler.NewHealthHandler(okPinger{}, nil, appVersion),
			Persons: handler.NewPersonsHandler(svc, zap.NewNop()),
			Info:    handler.NewInfoHandler(svc),
			Docs:    handler.NewDocsHandler(),
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 3001, Env: "test"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func TestNewApp_Routes(t *testing.T) {
	cfg := testConfig()
	app := newApp(cfg, newTestDeps(cfg), false)

	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		expectedCode int
		contains     string
	}{
		{"list persons", http.MethodGet, "/api/persons", "", 200, "[]"},
		{"create person", http.MethodPost, "/api/persons", `{"name":"Arto Hellas","number":"040-123456"}`, 200, `"name":"Arto Hellas"`},
		{"malformatted id", http.MethodGet, "/api/persons/1", "", 400, `{"error":"malformatted id"}`},
		{"info", http.MethodGet, "/info", "", 200, "Phonebook has info for"},
		{"health", http.MethodGet, "/health", "", 200, `"status":"healthy"`},
		{"metrics", http.MethodGet, "/metrics", "", 200, "phonebook_http_requests_total"},
		{"openapi", http.MethodGet, "/openapi.yaml", "", 200, "openapi: 3.0.3"},
		{"unknown endpoint", http.MethodGet, "/api/notes", "", 404, `{"error":"unknown endpoint"}`},
		{"unsupported method", http.MethodPatch, "/api/persons", "", 404, `{"error":"unknown endpoint"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reader io.Reader
			if tt.body != "" {
				reader = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, reader)
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.contains)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestNewApp_StaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>phonebook</h1>"), 0o644))

	cfg := testConfig()
	cfg.Server.StaticDir = dir
	app := newApp(cfg, newTestDeps(cfg), false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "<h1>phonebook</h1>", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing.js", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestNewApp_CORS(t *testing.T) {
	cfg := testConfig()
	app := newApp(cfg, newTestDeps(cfg), false)

	req := httptest.NewRequest(http.MethodGet, "/api/persons", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

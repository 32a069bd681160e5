package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/phonebook/phonebook/internal/config"
	"github.com/phonebook/phonebook/internal/handler"
	"github.com/phonebook/phonebook/internal/middleware"
	pgrepo "github.com/phonebook/phonebook/internal/repository/postgres"
	"github.com/phonebook/phonebook/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	*Databases

	PersonRepo    *pgrepo.PersonRepository
	PersonService *service.PersonService

	Handlers *Handlers

	// RateLimitMiddleware is nil unless rate limiting is enabled
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// Handlers holds every HTTP handler
type Handlers struct {
	Health  *handler.HealthHandler
	Persons *handler.PersonsHandler
	Info    *handler.InfoHandler
	Docs    *handler.DocsHandler
}

// initDependencies initializes all dependencies
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	dbs, err := initDatabases(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Config:    cfg,
		Logger:    logger,
		Databases: dbs,
	}

	deps.PersonRepo = pgrepo.NewPersonRepository(dbs.Postgres)
	deps.PersonService = service.NewPersonService(deps.PersonRepo)

	deps.Handlers = &Handlers{
		Health:  handler.NewHealthHandler(dbs.Postgres, dbs.Redis, appVersion),
		Persons: handler.NewPersonsHandler(deps.PersonService, logger),
		Info:    handler.NewInfoHandler(deps.PersonService),
		Docs:    handler.NewDocsHandler(),
	}

	if cfg.RateLimit.Enabled && dbs.Redis != nil {
		deps.RateLimitMiddleware = middleware.NewRateLimitMiddleware(dbs.Redis, middleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			Logger: logger,
		})
	}

	return deps, nil
}

// Close releases all resources
func (d *Dependencies) Close() {
	if d.Databases != nil {
		d.Databases.Close()
	}
}

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phonebook/phonebook/internal/handler"
)

// registerRoutes registers all HTTP routes. The unknown endpoint fallback
// must stay last.
func registerRoutes(app *fiber.App, deps *Dependencies) {
	h := deps.Handlers

	// Probes, docs and metrics
	h.Health.RegisterRoutes(app)
	h.Docs.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/info", h.Info.Info)

	api := app.Group("/api")
	if deps.RateLimitMiddleware != nil {
		api.Use(deps.RateLimitMiddleware.Handler())
	}
	h.Persons.RegisterRoutes(api.Group("/persons"))

	// Frontend build, if any
	if dir := deps.Config.Server.StaticDir; dir != "" {
		app.Static("/", dir)
	}

	app.Use(handler.UnknownEndpoint)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/phonebook/phonebook/internal/config"
	"github.com/phonebook/phonebook/internal/handler"
	"github.com/phonebook/phonebook/internal/middleware"
	"github.com/phonebook/phonebook/internal/pkg/logger"
)

const appVersion = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	defer func() { _ = logger.Sync() }()

	sentryEnabled := cfg.Sentry.Enabled()
	if sentryEnabled {
		sentryConfig := middleware.SentryConfig{
			DSN:          cfg.Sentry.DSN,
			Environment:  cfg.Sentry.Environment,
			Release:      "phonebook@" + appVersion,
			SampleRate:   cfg.Sentry.SampleRate,
			FlushTimeout: 5 * time.Second,
		}

		if err := middleware.InitSentry(sentryConfig); err != nil {
			log.Error("failed to initialize Sentry", zap.Error(err))
			sentryEnabled = false
		} else {
			log.Info("Sentry initialized",
				zap.String("environment", sentryConfig.Environment),
				zap.String("release", sentryConfig.Release),
			)
			defer middleware.FlushSentry(sentryConfig.FlushTimeout)
		}
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := initDependencies(initCtx, cfg, log)
	cancelInit()
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	app := newApp(cfg, deps, sentryEnabled)

	go func() {
		addr := cfg.Server.Addr()
		log.Info("starting server", zap.String("addr", addr), zap.String("env", cfg.Server.Env))
		if err := app.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

// newApp builds the Fiber app with middleware and routes installed
func newApp(cfg *config.Config, deps *Dependencies, sentryEnabled bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Phonebook API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             1 << 20,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          handler.ErrorHandler(deps.Logger, sentryEnabled),
	})

	app.Use(middleware.RequestID())

	metricsMiddleware := middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig())
	app.Use(metricsMiddleware.Handler())

	loggerMiddleware := middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(deps.Logger))
	app.Use(loggerMiddleware.Handler())

	app.Use(middleware.RecoverWithSentry(deps.Logger, sentryEnabled))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	app.Use(middleware.NewCORSMiddleware(corsConfig).Handler())

	registerRoutes(app, deps)

	return app
}

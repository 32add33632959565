package internal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/draughts/internal/config"
	"github.com/lk16/draughts/internal/middleware"
	"github.com/lk16/draughts/internal/repository"
	"github.com/lk16/draughts/internal/routes"
	"github.com/lk16/draughts/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024
	schemaTimeout       = 10 * time.Second
)

// SetupApp loads the configuration, connects to external services and builds the app.
// Sessions live in process memory, so the server never runs with prefork.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	logger := config.SetLogLevel()

	cfg := config.LoadServerConfig()

	services, err := services.InitServices(cfg, logger)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	results := repository.NewResultRepositoryFromServices(services)
	if results.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		if err = results.EnsureSchema(ctx); err != nil {
			slog.Error("Failed to create results schema", "error", err)
			os.Exit(1)
		}
	}

	return BuildApp(cfg, services, logger), cfg
}

// BuildApp creates the Fiber app on top of already initialized services.
func BuildApp(cfg *config.ServerConfig, services *services.Services, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		return c.Next()
	})

	app.Use(middleware.Logging(logger))

	routes.SetupRoutes(app)

	return app
}

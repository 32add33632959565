package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/draughts/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())

	// Session routes
	apiGroup.Post("/sessions", CreateSession)
	apiGroup.Get("/sessions/:id", GetSession)
	apiGroup.Get("/sessions/:id/board", GetBoard)
	apiGroup.Post("/sessions/:id/validate", ValidateMove)
	apiGroup.Post("/sessions/:id/moves", PlayMove)
	apiGroup.Delete("/sessions/:id", DeleteSession)

	// Archive and statistics routes
	apiGroup.Get("/results/:id", GetResult)
	apiGroup.Get("/stats", GetStats)
}

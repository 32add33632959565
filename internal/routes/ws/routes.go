package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/draughts/internal/config"
	"github.com/lk16/draughts/internal/middleware"
	"github.com/lk16/draughts/internal/repository"
	"github.com/lk16/draughts/internal/services"
	"github.com/lk16/draughts/internal/ws"
)

func handleWs(c *websocket.Conn) {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck

	repo := repository.NewSessionRepositoryFromServices(services, cfg.SnapshotTTL)

	h := ws.NewHandler(c, repo)
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

// requireUpgrade rejects plain HTTP requests to the websocket endpoint.
func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", middleware.AuthOrToken(), requireUpgrade, websocket.New(handleWs))
}

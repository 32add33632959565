// Package tests contains helpers for testing the HTTP app end to end.
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/draughts/internal"
	"github.com/lk16/draughts/internal/config"
	"github.com/lk16/draughts/internal/registry"
	"github.com/lk16/draughts/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	TestToken    = "test-token"
	TestUsername = "test-user"
	TestPassword = "test-password"
)

// NewTestApp builds the app on top of an in-memory Redis, without Postgres.
func NewTestApp(t *testing.T, maxSessions int) (*fiber.App, *services.Services) {
	t.Helper()

	mr := miniredis.RunT(t)

	cfg := &config.ServerConfig{
		ServerHost:         "localhost",
		ServerPort:         "0",
		RedisURL:           "redis://" + mr.Addr(),
		BasicAuthUsername:  TestUsername,
		BasicAuthPassword:  TestPassword,
		Token:              TestToken,
		MaxSessions:        maxSessions,
		SessionIdleTimeout: time.Hour,
		SnapshotTTL:        time.Hour,
	}

	redisClient, err := services.InitRedis(cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisClient.Close() })

	sessions, err := registry.New(cfg.MaxSessions, cfg.SessionIdleTimeout, nil)
	require.NoError(t, err)

	svc := &services.Services{Redis: redisClient, Sessions: sessions}

	return internal.BuildApp(cfg, svc, slog.New(slog.DiscardHandler)), svc
}

// Do sends a request with the test token and decodes a JSON response into out, if out is not nil.
func Do(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, payload)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-token", TestToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

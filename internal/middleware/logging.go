package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logging middleware that logs route, status code and response time.
// Lines are forwarded to slogger, server errors at error level.
func Logging(slogger *slog.Logger) fiber.Handler {
	return logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} | ${path}\n",
		Output: io.Discard,
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%6.1fms", latency)
			},
		},
		Done: func(c *fiber.Ctx, logString []byte) {
			level := slog.LevelInfo
			if c.Response().StatusCode() >= fiber.StatusInternalServerError {
				level = slog.LevelError
			}

			slogger.Log(c.Context(), level, strings.TrimSpace(string(logString)))
		},
	})
}

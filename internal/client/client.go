package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lk16/draughts/internal/config"
	"github.com/lk16/draughts/internal/models"
)

const (
	clientTimeout = 5 * time.Second
)

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// APIClient talks to the HTTP API of the draughts server.
type APIClient struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	httpClient *http.Client
	logger     *slog.Logger
}

func NewAPIClient(config *config.ClientConfig, logger *slog.Logger) *APIClient {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &APIClient{
		config:     config,
		httpClient: &http.Client{Timeout: clientTimeout},
		logger:     logger,
	}
}

func (c *APIClient) logRequestAsCurl(ctx context.Context, request *http.Request, body []byte) {
	// Do not build string if we're not logging it
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(request.Method)
	builder.WriteString(" '")
	builder.WriteString(request.URL.String())
	builder.WriteString("'")

	for key, values := range request.Header {
		for _, value := range values {
			if strings.EqualFold(key, "x-token") {
				value = "***"
			}
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if len(body) > 0 {
		builder.WriteString(" -d '")
		builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
		builder.WriteString("'")
	}

	c.logger.DebugContext(ctx, "request", "curl", builder.String())
}

// request sends a JSON request and decodes the JSON response into out, if out is not nil.
func (c *APIClient) request(ctx context.Context, method string, path string, payload any, out any) error {
	var body []byte

	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	request, err := http.NewRequestWithContext(ctx, method, c.config.ServerURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	request.Header.Set("x-token", c.config.Token)

	c.logRequestAsCurl(ctx, request, body)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.DebugContext(ctx, "response", "status", response.Status, "body", string(responseBody))

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errorBody struct {
			Error string `json:"error"`
		}

		message := response.Status
		if json.Unmarshal(responseBody, &errorBody) == nil && errorBody.Error != "" {
			message = errorBody.Error
		}

		return &APIError{StatusCode: response.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// CreateSession starts a new game on the server.
func (c *APIClient) CreateSession(ctx context.Context) (models.SessionResponse, error) {
	var resp models.SessionResponse
	err := c.request(ctx, http.MethodPost, "/api/sessions", nil, &resp)
	return resp, err
}

// GetSession fetches the state of a game.
func (c *APIClient) GetSession(ctx context.Context, id string) (models.SessionResponse, error) {
	var resp models.SessionResponse
	err := c.request(ctx, http.MethodGet, "/api/sessions/"+id, nil, &resp)
	return resp, err
}

// ValidateMove asks the server whether a move is legal.
func (c *APIClient) ValidateMove(ctx context.Context, id string, move models.MoveRequest) (bool, error) {
	var resp models.ValidateResponse
	err := c.request(ctx, http.MethodPost, "/api/sessions/"+id+"/validate", move, &resp)
	return resp.Valid, err
}

// Play plays a move and returns the new state of the game.
func (c *APIClient) Play(ctx context.Context, id string, move models.MoveRequest) (models.SessionResponse, error) {
	var resp models.SessionResponse
	err := c.request(ctx, http.MethodPost, "/api/sessions/"+id+"/moves", move, &resp)
	return resp, err
}

// DestroySession ends a game on the server.
func (c *APIClient) DestroySession(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/api/sessions/"+id, nil, nil)
}

// Stats fetches the game counters of the server.
func (c *APIClient) Stats(ctx context.Context) (models.Stats, error) {
	var resp models.Stats
	err := c.request(ctx, http.MethodGet, "/api/stats", nil, &resp)
	return resp, err
}

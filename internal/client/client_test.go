package client_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/lk16/draughts/internal/client"
	"github.com/lk16/draughts/internal/config"
	"github.com/lk16/draughts/internal/draughts"
	"github.com/lk16/draughts/internal/models"
	"github.com/lk16/draughts/internal/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) string {
	t.Helper()

	app, _ := tests.NewTestApp(t, 4)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestAPIClient(t *testing.T) {
	serverURL := startServer(t)
	ctx := context.Background()

	c := client.NewAPIClient(&config.ClientConfig{ServerURL: serverURL, Token: tests.TestToken}, nil)

	created, err := c.CreateSession(ctx)
	require.NoError(t, err)
	require.Equal(t, draughts.White.Code(), created.CurrentPlayer)

	move := models.MoveRequest{From: draughts.Position{Row: 5, Col: 4}, To: draughts.Position{Row: 4, Col: 5}}

	valid, err := c.ValidateMove(ctx, created.ID, move)
	require.NoError(t, err)
	require.True(t, valid)

	played, err := c.Play(ctx, created.ID, move)
	require.NoError(t, err)
	require.Equal(t, draughts.Black.Code(), played.CurrentPlayer)

	_, err = c.Play(ctx, created.ID, move)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "illegal move")

	state, err := c.GetSession(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, played, state)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.GamesStarted)

	require.NoError(t, c.DestroySession(ctx, created.ID))

	err = c.DestroySession(ctx, created.ID)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestAPIClient_BadToken(t *testing.T) {
	serverURL := startServer(t)

	c := client.NewAPIClient(&config.ClientConfig{ServerURL: serverURL, Token: "wrong"}, nil)

	_, err := c.GetSession(context.Background(), uuid.New().String())

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Unauthorized", apiErr.Message)
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input   string
		want    models.MoveRequest
		wantErr error
	}{
		{
			input: "5,0 4,1",
			want:  models.MoveRequest{From: draughts.Position{Row: 5, Col: 0}, To: draughts.Position{Row: 4, Col: 1}},
		},
		{
			input: "  2,3   4,5 ",
			want:  models.MoveRequest{From: draughts.Position{Row: 2, Col: 3}, To: draughts.Position{Row: 4, Col: 5}},
		},
		{input: "5,0", wantErr: client.ErrInvalidMoveNotation},
		{input: "5,0 4,1 3,2", wantErr: client.ErrInvalidMoveNotation},
		{input: "50 41", wantErr: client.ErrInvalidMoveNotation},
		{input: "a,0 4,1", wantErr: client.ErrInvalidMoveNotation},
		{input: "5,0 4,x", wantErr: client.ErrInvalidMoveNotation},
		{input: "5,0 8,1", wantErr: draughts.ErrInvalidCoordinate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := client.ParseMove(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

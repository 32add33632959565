package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/draughts/internal/models"
	"github.com/lk16/draughts/internal/repository"
)

const (
	messageTimeout = 2 * time.Second
)

// Conn is the part of a websocket connection the handler uses.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	repo *repository.SessionRepository
	ws   Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, repo *repository.SessionRepository) *Handler {
	return &Handler{repo: repo, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// handleMessage answers a single request. Game errors such as an illegal move are
// reported to the client, malformed requests end the connection.
func (h *Handler) handleMessage(ctx context.Context, req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	var (
		data any
		err  error
	)

	switch req.Event {
	case "create_session":
		data, err = h.repo.Create(ctx)
	case "get_state":
		var reqData SessionRequest
		if err = json.Unmarshal(req.Data, &reqData); err != nil {
			return nil, fmt.Errorf("ws %s unmarshal error: %w", req.Event, err)
		}
		data, err = h.repo.Get(ctx, reqData.SessionID)
	case "validate_move", "execute_move":
		var reqData MoveRequest
		if err = json.Unmarshal(req.Data, &reqData); err != nil {
			return nil, fmt.Errorf("ws %s unmarshal error: %w", req.Event, err)
		}
		data, err = h.handleMove(ctx, req.Event, reqData)
	case "destroy_session":
		var reqData SessionRequest
		if err = json.Unmarshal(req.Data, &reqData); err != nil {
			return nil, fmt.Errorf("ws %s unmarshal error: %w", req.Event, err)
		}
		err = h.repo.Destroy(ctx, reqData.SessionID)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}

	if err != nil {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	return &Outgoing{ID: req.ID, Data: data}, nil
}

func (h *Handler) handleMove(ctx context.Context, event string, reqData MoveRequest) (any, error) {
	move := models.MoveRequest{From: reqData.From, To: reqData.To}
	if err := move.Validate(); err != nil {
		return nil, err
	}

	if event == "validate_move" {
		return h.repo.Validate(ctx, reqData.SessionID, move)
	}

	return h.repo.Play(ctx, reqData.SessionID, move)
}

// Handle handles the websocket connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), messageTimeout)
		respData, err := h.handleMessage(ctx, req)
		cancel()

		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

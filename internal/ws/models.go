package ws

import (
	"encoding/json"

	"github.com/lk16/draughts/internal/draughts"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// SessionRequest is the payload of events that refer to an existing session.
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// MoveRequest is the payload of validate_move and execute_move.
type MoveRequest struct {
	SessionID string            `json:"session_id"`
	From      draughts.Position `json:"from"`
	To        draughts.Position `json:"to"`
}

package models

import (
	"fmt"

	"github.com/lk16/draughts/internal/draughts"
)

// MoveRequest represents a move submitted by a client.
type MoveRequest struct {
	From draughts.Position `json:"from"`
	To   draughts.Position `json:"to"`
}

// Validate checks that both squares are on the board.
func (m *MoveRequest) Validate() error {
	if !m.From.InBounds() {
		return fmt.Errorf("from %s: %w", m.From, draughts.ErrInvalidCoordinate)
	}

	if !m.To.InBounds() {
		return fmt.Errorf("to %s: %w", m.To, draughts.ErrInvalidCoordinate)
	}

	return nil
}

// SessionResponse represents the full state of a game session.
type SessionResponse struct {
	ID                string             `json:"id"`
	Board             draughts.State     `json:"board"`
	CurrentPlayer     int                `json:"current_player"`
	PlayerOneCaptured int                `json:"player_one_captured"`
	PlayerTwoCaptured int                `json:"player_two_captured"`
	GameOver          bool               `json:"game_over"`
	Winner            int                `json:"winner"`
	ChainActive       bool               `json:"chain_active"`
	ChainAt           *draughts.Position `json:"chain_at,omitempty"`
}

// NewSessionResponse converts a session snapshot into a response.
func NewSessionResponse(id string, snapshot draughts.Snapshot) SessionResponse {
	return SessionResponse{
		ID:                id,
		Board:             snapshot.Board,
		CurrentPlayer:     snapshot.CurrentPlayer,
		PlayerOneCaptured: snapshot.PlayerOneCaptured,
		PlayerTwoCaptured: snapshot.PlayerTwoCaptured,
		GameOver:          snapshot.Winner != draughts.NoPlayer.Code(),
		Winner:            snapshot.Winner,
		ChainActive:       snapshot.ChainActive,
		ChainAt:           snapshot.ChainAt,
	}
}

// BoardResponse represents the board of a session in cell codes.
type BoardResponse struct {
	Board draughts.State `json:"board"`
}

// ValidateResponse represents the outcome of a move validation.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// Stats represents counters over all games played on this server.
type Stats struct {
	GamesStarted  int64 `json:"games_started"`
	GamesFinished int64 `json:"games_finished"`
	WhiteWins     int64 `json:"white_wins"`
	BlackWins     int64 `json:"black_wins"`
	LiveSessions  int   `json:"live_sessions"`
}

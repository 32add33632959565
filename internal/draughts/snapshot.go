package draughts

import (
	"errors"
	"fmt"
)

// Snapshot is the complete state of a session in host encoding.
type Snapshot struct {
	Board             State     `json:"board"`
	CurrentPlayer     int       `json:"current_player"`
	ChainActive       bool      `json:"chain_active"`
	ChainAt           *Position `json:"chain_at,omitempty"`
	PlayerOneCaptured int       `json:"player_one_captured"`
	PlayerTwoCaptured int       `json:"player_two_captured"`
	Winner            int       `json:"winner"`
}

// Snapshot returns the state of the session.
func (s *Session) Snapshot() Snapshot {
	snapshot := Snapshot{
		Board:             s.board.State(),
		CurrentPlayer:     s.currentPlayer.Code(),
		ChainActive:       s.chainActive,
		PlayerOneCaptured: s.whiteCaptured,
		PlayerTwoCaptured: s.blackCaptured,
		Winner:            s.winner.Code(),
	}

	if s.chainActive {
		chainAt := s.chainAt
		snapshot.ChainAt = &chainAt
	}

	return snapshot
}

// RestoreSession recreates a session from a snapshot.
func RestoreSession(snapshot Snapshot, opts ...Option) (*Session, error) {
	board, err := NewBoardFromState(snapshot.Board)
	if err != nil {
		return nil, err
	}

	current, err := PlayerFromCode(snapshot.CurrentPlayer)
	if err != nil {
		return nil, fmt.Errorf("current player: %w", err)
	}
	if current == NoPlayer {
		return nil, fmt.Errorf("current player: %w: %d", ErrInvalidPlayer, snapshot.CurrentPlayer)
	}

	winner, err := PlayerFromCode(snapshot.Winner)
	if err != nil {
		return nil, fmt.Errorf("winner: %w", err)
	}

	if snapshot.PlayerOneCaptured < 0 || snapshot.PlayerTwoCaptured < 0 {
		return nil, errors.New("captured counters must not be negative")
	}

	s := NewSession(opts...)
	s.board = board
	s.currentPlayer = current
	s.whiteCaptured = snapshot.PlayerOneCaptured
	s.blackCaptured = snapshot.PlayerTwoCaptured
	s.winner = winner

	if snapshot.ChainActive {
		if snapshot.ChainAt == nil {
			return nil, errors.New("chain is active but has no position")
		}

		chainAt := *snapshot.ChainAt
		if !chainAt.InBounds() {
			return nil, fmt.Errorf("chain position: %w: %v", ErrInvalidCoordinate, chainAt)
		}
		if board.at(chainAt).Owner() != current {
			return nil, fmt.Errorf("chain position %v does not hold a piece of the side to move", chainAt)
		}

		s.chainActive = true
		s.chainAt = chainAt
	}

	return s, nil
}

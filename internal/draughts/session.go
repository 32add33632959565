package draughts

import (
	"fmt"
	"log/slog"
)

// Session is a single game: a board, the side to move, capture counters and the result.
// A session is not safe for concurrent use.
type Session struct {
	board         *Board
	currentPlayer Player

	// chainActive is set while the piece at chainAt is in the middle of a multi-jump.
	chainActive bool
	chainAt     Position

	whiteCaptured int
	blackCaptured int

	// winner is NoPlayer while the game is ongoing.
	winner Player

	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger receiving move diagnostics. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBoard starts the session from board instead of the starting position.
// The session takes ownership of board.
func WithBoard(board *Board) Option {
	return func(s *Session) {
		if board != nil {
			s.board = board
		}
	}
}

// WithCurrentPlayer sets the side to move first.
func WithCurrentPlayer(player Player) Option {
	return func(s *Session) {
		if player == White || player == Black {
			s.currentPlayer = player
		}
	}
}

// NewSession creates a game in the starting position with White to move.
func NewSession(opts ...Option) *Session {
	s := &Session{
		board:         NewBoardStart(),
		currentPlayer: White,
		logger:        slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ValidateMove checks if the side to move may move the piece at from to to.
func (s *Session) ValidateMove(from, to Position) bool {
	if s.winner != NoPlayer || !from.InBounds() {
		return false
	}

	piece := s.board.at(from)
	if piece.Owner() != s.currentPlayer {
		s.logger.Debug("piece does not belong to side to move",
			"player", s.currentPlayer.String(), "from", from.String(), "piece", piece.Code())
		return false
	}

	if s.chainActive && from != s.chainAt {
		return false
	}

	if s.board.hasCapture(s.currentPlayer) {
		if !s.board.CanCapture(from, s.currentPlayer, true) {
			return false
		}
		if abs(to.Row-from.Row) != 2 || abs(to.Col-from.Col) != 2 {
			return false
		}
	}

	return s.board.IsValidMove(from, to, s.currentPlayer)
}

// ExecuteMove applies a move previously accepted by ValidateMove.
// After a capture the same side keeps the turn while the moved piece can capture again.
func (s *Session) ExecuteMove(from, to Position) error {
	if s.winner != NoPlayer {
		return ErrGameAlreadyOver
	}

	piece, err := s.board.Get(from)
	if err != nil {
		return err
	}

	captured, err := s.board.ExecuteMove(from, to)
	if err != nil {
		return fmt.Errorf("execute move: %w", err)
	}

	s.logger.Debug("executed move",
		"player", s.currentPlayer.String(), "from", from.String(), "to", to.String(), "captured", captured)

	if landed := s.board.at(to); landed != piece {
		s.logger.Debug("promoted piece", "at", to.String(), "piece", landed.Code())
	}

	if captured {
		if s.currentPlayer == White {
			s.whiteCaptured++
		} else {
			s.blackCaptured++
		}

		if s.board.CanCapture(to, s.currentPlayer, true) {
			s.chainActive = true
			s.chainAt = to
			return nil
		}
	}

	s.chainActive = false
	s.currentPlayer = s.currentPlayer.Opponent()

	if s.IsGameOver() {
		s.logger.Info("game over", "winner", s.winner.String(),
			"white_captured", s.whiteCaptured, "black_captured", s.blackCaptured)
	}

	return nil
}

// Play validates and executes a move in one step.
func (s *Session) Play(from, to Position) error {
	if s.winner != NoPlayer {
		return ErrGameAlreadyOver
	}

	if !s.ValidateMove(from, to) {
		return fmt.Errorf("%w: %v -> %v", ErrIllegalMove, from, to)
	}

	return s.ExecuteMove(from, to)
}

// IsGameOver checks if the game has ended and records the winner if so.
// A side without pieces loses, otherwise a side without valid moves loses,
// checking the side to move first. Once over, the result never changes.
func (s *Session) IsGameOver() bool {
	if s.winner != NoPlayer {
		return true
	}

	switch {
	case s.board.CountPieces(White) == 0:
		s.winner = Black
	case s.board.CountPieces(Black) == 0:
		s.winner = White
	case !s.board.HasValidMoves(s.currentPlayer):
		s.winner = s.currentPlayer.Opponent()
	case !s.board.HasValidMoves(s.currentPlayer.Opponent()):
		s.winner = s.currentPlayer
	default:
		return false
	}

	return true
}

// Winner returns the winning side, or NoPlayer while the game is ongoing.
func (s *Session) Winner() Player {
	return s.winner
}

// CurrentPlayer returns the side to move.
func (s *Session) CurrentPlayer() Player {
	return s.currentPlayer
}

// HasCapturedThisTurn checks if the side to move is in the middle of a capture chain.
func (s *Session) HasCapturedThisTurn() bool {
	return s.chainActive
}

// ChainPosition returns the square of the piece that must continue capturing.
func (s *Session) ChainPosition() (Position, bool) {
	return s.chainAt, s.chainActive
}

// Captured returns the number of opponent pieces captured by player.
func (s *Session) Captured(player Player) int {
	switch player {
	case White:
		return s.whiteCaptured
	case Black:
		return s.blackCaptured
	default:
		return 0
	}
}

// PlayerOneCaptured returns the number of pieces captured by White.
func (s *Session) PlayerOneCaptured() int {
	return s.whiteCaptured
}

// PlayerTwoCaptured returns the number of pieces captured by Black.
func (s *Session) PlayerTwoCaptured() int {
	return s.blackCaptured
}

// BoardState returns a copy of the grid in host encoding.
func (s *Session) BoardState() State {
	return s.board.State()
}

// Board returns a copy of the board.
func (s *Session) Board() *Board {
	return s.board.Clone()
}

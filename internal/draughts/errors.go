package draughts

import "errors"

var (
	ErrInvalidCoordinate = errors.New("coordinate out of range")
	ErrInvalidCell       = errors.New("invalid cell code")
	ErrInvalidPlayer     = errors.New("invalid player code")
	ErrEmptySource       = errors.New("no piece at source square")
	ErrIllegalMove       = errors.New("illegal move")
	ErrGameAlreadyOver   = errors.New("game already over")
	ErrInvalidBoard      = errors.New("invalid board")
)

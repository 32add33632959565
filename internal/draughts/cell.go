package draughts

import (
	"fmt"
)

// Size is the number of rows and columns of the board.
const Size = 8

// Player identifies one of the two sides.
type Player uint8

const (
	NoPlayer Player = iota
	White
	Black
)

// Player codes used at the host boundary.
const (
	noPlayerCode = 0
	whiteCode    = 1
	blackCode    = 3
)

// PlayerFromCode converts a host player code (0, 1 or 3) to a Player.
func PlayerFromCode(code int) (Player, error) {
	switch code {
	case noPlayerCode:
		return NoPlayer, nil
	case whiteCode:
		return White, nil
	case blackCode:
		return Black, nil
	default:
		return NoPlayer, fmt.Errorf("%w: %d", ErrInvalidPlayer, code)
	}
}

// Code returns the host code of the player: 1 for White, 3 for Black, 0 otherwise.
func (p Player) Code() int {
	switch p {
	case White:
		return whiteCode
	case Black:
		return blackCode
	default:
		return noPlayerCode
	}
}

// Opponent returns the other side. The opponent of NoPlayer is NoPlayer.
func (p Player) Opponent() Player {
	switch p {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoPlayer
	}
}

// forward returns the row direction in which the men of p move.
func (p Player) forward() int {
	if p == White {
		return -1
	}
	return 1
}

// farRow returns the row on which the men of p are promoted.
func (p Player) farRow() int {
	if p == White {
		return 0
	}
	return Size - 1
}

func (p Player) String() string {
	switch p {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Cell is the content of a single square.
type Cell uint8

const (
	Empty Cell = iota
	WhiteMan
	WhiteKing
	BlackMan
	BlackKing
)

// CellFromCode converts a host cell code (0-4) to a Cell.
func CellFromCode(code int) (Cell, error) {
	if code < int(Empty) || code > int(BlackKing) {
		return Empty, fmt.Errorf("%w: %d", ErrInvalidCell, code)
	}
	return Cell(code), nil
}

// Code returns the host code of the cell:
// 0 empty, 1 white man, 2 white king, 3 black man, 4 black king.
func (c Cell) Code() int {
	return int(c)
}

// Owner returns the side owning the piece on this cell.
func (c Cell) Owner() Player {
	switch c {
	case WhiteMan, WhiteKing:
		return White
	case BlackMan, BlackKing:
		return Black
	default:
		return NoPlayer
	}
}

// IsKing checks if the cell holds a king.
func (c Cell) IsKing() bool {
	return c == WhiteKing || c == BlackKing
}

// Promoted returns the king of the same side. Kings and empty cells are returned unchanged.
func (c Cell) Promoted() Cell {
	switch c {
	case WhiteMan:
		return WhiteKing
	case BlackMan:
		return BlackKing
	default:
		return c
	}
}

// Rune returns the character used to draw the cell.
func (c Cell) Rune() rune {
	switch c {
	case WhiteMan:
		return 'w'
	case WhiteKing:
		return 'W'
	case BlackMan:
		return 'b'
	case BlackKing:
		return 'B'
	default:
		return '.'
	}
}

// Position addresses a square by row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds checks if the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

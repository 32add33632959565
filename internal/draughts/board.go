package draughts

import (
	"fmt"
	"strings"
)

// State is the host encoding of a board, see Cell.Code.
type State [Size][Size]int

// Board holds the contents of all 64 squares. It knows nothing about turns or scores.
type Board struct {
	cells [Size][Size]Cell
}

// NewBoardEmpty creates a board without pieces.
func NewBoardEmpty() *Board {
	return &Board{}
}

// NewBoardStart creates a board with the starting position.
// Black men fill rows 0-2 and White men rows 5-7, on squares where row+col is odd.
func NewBoardStart() *Board {
	b := NewBoardEmpty()

	for row := range Size {
		for col := range Size {
			if (row+col)%2 == 0 {
				continue
			}

			switch {
			case row < 3:
				b.cells[row][col] = BlackMan
			case row > 4:
				b.cells[row][col] = WhiteMan
			}
		}
	}

	return b
}

// NewBoardFromState creates a board from its host encoding.
func NewBoardFromState(state State) (*Board, error) {
	b := NewBoardEmpty()

	for row := range Size {
		for col := range Size {
			cell, err := CellFromCode(state[row][col])
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", row, col, err)
			}
			b.cells[row][col] = cell
		}
	}

	return b, nil
}

// NewBoardFromString creates a board from 64 cell codes in row-major order.
// Rows may be separated by slashes, as produced by String.
func NewBoardFromString(s string) (*Board, error) {
	s = strings.ReplaceAll(s, "/", "")

	if len(s) != Size*Size {
		return nil, fmt.Errorf("%w: board string must be %d cell codes long, got %d", ErrInvalidBoard, Size*Size, len(s))
	}

	var state State
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: unexpected character %q at index %d", ErrInvalidBoard, r, i)
		}
		state[i/Size][i%Size] = int(r - '0')
	}

	return NewBoardFromState(state)
}

// Get returns the cell at pos.
func (b *Board) Get(pos Position) (Cell, error) {
	if !pos.InBounds() {
		return Empty, fmt.Errorf("%w: %v", ErrInvalidCoordinate, pos)
	}
	return b.cells[pos.Row][pos.Col], nil
}

// Set overwrites the cell at pos.
func (b *Board) Set(pos Position, cell Cell) error {
	if !pos.InBounds() {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinate, pos)
	}
	if cell > BlackKing {
		return fmt.Errorf("%w: %d", ErrInvalidCell, cell)
	}
	b.cells[pos.Row][pos.Col] = cell
	return nil
}

func (b *Board) at(pos Position) Cell {
	return b.cells[pos.Row][pos.Col]
}

// CapturingPieces returns the positions of all pieces of player that can jump.
// A non-empty result means the forced capture rule is active for player.
func (b *Board) CapturingPieces(player Player) []Position {
	positions := make([]Position, 0)

	for row := range Size {
		for col := range Size {
			pos := Position{Row: row, Col: col}
			if b.at(pos).Owner() == player && b.CanCapture(pos, player, true) {
				positions = append(positions, pos)
			}
		}
	}

	return positions
}

// hasCapture checks if any piece of player can jump.
func (b *Board) hasCapture(player Player) bool {
	for row := range Size {
		for col := range Size {
			pos := Position{Row: row, Col: col}
			if b.at(pos).Owner() == player && b.CanCapture(pos, player, true) {
				return true
			}
		}
	}
	return false
}

// CanCapture checks if the piece of player at pos has at least one jump.
// Kings jump in both row directions. Men only jump forward, unless
// respectDirectionality is false.
func (b *Board) CanCapture(pos Position, player Player, respectDirectionality bool) bool {
	if !pos.InBounds() {
		return false
	}

	piece := b.at(pos)
	if piece.Owner() != player {
		return false
	}

	for _, dRow := range rowDirections(piece, respectDirectionality) {
		for _, dCol := range []int{-1, 1} {
			if b.canJump(pos, dRow, dCol, player) {
				return true
			}
		}
	}

	return false
}

func rowDirections(piece Cell, respectDirectionality bool) []int {
	if piece.IsKing() || !respectDirectionality {
		return []int{-1, 1}
	}
	return []int{piece.Owner().forward()}
}

// canJump checks if the landing square two steps along (dRow, dCol) is free
// and the square in between holds an opponent piece.
func (b *Board) canJump(from Position, dRow, dCol int, player Player) bool {
	landing := from.offset(2*dRow, 2*dCol)
	if !landing.InBounds() || b.at(landing) != Empty {
		return false
	}

	return b.at(from.offset(dRow, dCol)).Owner() == player.Opponent()
}

// IsValidMove checks if player may move the piece at from to to.
// While any piece of player can capture, only jumps are valid.
func (b *Board) IsValidMove(from, to Position, player Player) bool {
	return b.isValidMove(from, to, player, b.hasCapture(player))
}

func (b *Board) isValidMove(from, to Position, player Player, forced bool) bool {
	if !to.InBounds() || b.at(to) != Empty {
		return false
	}

	if !from.InBounds() {
		return false
	}

	piece := b.at(from)
	if piece.Owner() != player {
		return false
	}

	dRow := to.Row - from.Row
	dCol := to.Col - from.Col

	if forced {
		if abs(dRow) != 2 || abs(dCol) != 2 {
			return false
		}
		if !piece.IsKing() && dRow != 2*player.forward() {
			return false
		}
		return b.canJump(from, dRow/2, dCol/2, player)
	}

	if abs(dCol) != 1 {
		return false
	}

	if piece.IsKing() {
		return abs(dRow) == 1
	}

	return dRow == player.forward()
}

// ExecuteMove moves the piece at from to to without checking legality.
// A move spanning two rows removes the piece in between and reports true.
// Men landing on their far row are promoted.
func (b *Board) ExecuteMove(from, to Position) (bool, error) {
	if !from.InBounds() || !to.InBounds() {
		return false, fmt.Errorf("%w: %v -> %v", ErrInvalidCoordinate, from, to)
	}

	piece := b.at(from)
	if piece == Empty {
		return false, fmt.Errorf("%w: %v", ErrEmptySource, from)
	}

	b.cells[to.Row][to.Col] = piece
	b.cells[from.Row][from.Col] = Empty

	captured := false
	if abs(to.Row-from.Row) == 2 {
		b.cells[(from.Row+to.Row)/2][(from.Col+to.Col)/2] = Empty
		captured = true
	}

	if !piece.IsKing() && to.Row == piece.Owner().farRow() {
		b.cells[to.Row][to.Col] = piece.Promoted()
	}

	return captured, nil
}

// HasValidMoves checks if player has at least one valid move.
func (b *Board) HasValidMoves(player Player) bool {
	forced := b.hasCapture(player)

	for row := range Size {
		for col := range Size {
			from := Position{Row: row, Col: col}
			if b.at(from).Owner() != player {
				continue
			}

			for dRow := -2; dRow <= 2; dRow++ {
				for dCol := -2; dCol <= 2; dCol++ {
					if b.isValidMove(from, from.offset(dRow, dCol), player, forced) {
						return true
					}
				}
			}
		}
	}

	return false
}

// CountPieces returns the number of men and kings of player.
func (b *Board) CountPieces(player Player) int {
	count := 0
	for row := range Size {
		for col := range Size {
			if b.cells[row][col].Owner() == player {
				count++
			}
		}
	}
	return count
}

// Cells returns a copy of the grid.
func (b *Board) Cells() [Size][Size]Cell {
	return b.cells
}

// State returns a copy of the grid in host encoding.
func (b *Board) State() State {
	var state State
	for row := range Size {
		for col := range Size {
			state[row][col] = b.cells[row][col].Code()
		}
	}
	return state
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// ASCIIArtLines returns the ascii art lines for the board.
func (b *Board) ASCIIArtLines() []string {
	lines := make([]string, Size+2)

	lines[0] = "+-0-1-2-3-4-5-6-7-+"
	for row := range Size {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d ", row)

		for col := range Size {
			sb.WriteRune(b.cells[row][col].Rune())
			sb.WriteByte(' ')
		}

		lines[row+1] = sb.String() + "|"
	}
	lines[Size+1] = "+-----------------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b *Board) Print() {
	for _, line := range b.ASCIIArtLines() {
		fmt.Println(line)
	}
}

// String returns the cell codes row by row, separated by slashes.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range Size {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := range Size {
			sb.WriteByte(byte('0' + b.cells[row][col].Code()))
		}
	}
	return sb.String()
}

package draughts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const emptyRow = "00000000"

// mustBoard builds a board from eight rows of eight cell codes.
func mustBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	require.Len(t, rows, Size)

	board, err := NewBoardFromString(strings.Join(rows, "/"))
	require.NoError(t, err)
	return board
}

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func TestNewBoardStart(t *testing.T) {
	board := NewBoardStart()

	for row := range Size {
		for col := range Size {
			cell, err := board.Get(pos(row, col))
			require.NoError(t, err)

			dark := (row+col)%2 == 1
			switch {
			case row < 3 && dark:
				require.Equal(t, BlackMan, cell, "cell (%d, %d)", row, col)
			case row > 4 && dark:
				require.Equal(t, WhiteMan, cell, "cell (%d, %d)", row, col)
			default:
				require.Equal(t, Empty, cell, "cell (%d, %d)", row, col)
			}
		}
	}

	require.Equal(t, 12, board.CountPieces(White))
	require.Equal(t, 12, board.CountPieces(Black))
}

func TestBoard_StringRoundTrip(t *testing.T) {
	board := NewBoardStart()

	parsed, err := NewBoardFromString(board.String())
	require.NoError(t, err)
	require.Equal(t, board.Cells(), parsed.Cells())

	require.Equal(t, "03030303/30303030/03030303/00000000/00000000/10101010/01010101/10101010", board.String())
}

func TestNewBoardFromString_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "0303"},
		{"bad character", strings.Repeat("0", 63) + "x"},
		{"unknown cell code", strings.Repeat("0", 63) + "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoardFromString(tt.input)
			require.Error(t, err)
		})
	}
}

func TestNewBoardFromState(t *testing.T) {
	state := NewBoardStart().State()

	board, err := NewBoardFromState(state)
	require.NoError(t, err)
	require.Equal(t, state, board.State())

	state[3][3] = 5
	_, err = NewBoardFromState(state)
	require.ErrorIs(t, err, ErrInvalidCell)
}

func TestBoard_GetSetBounds(t *testing.T) {
	board := NewBoardEmpty()

	_, err := board.Get(pos(8, 0))
	require.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = board.Get(pos(0, -1))
	require.ErrorIs(t, err, ErrInvalidCoordinate)

	require.ErrorIs(t, board.Set(pos(-1, 3), WhiteMan), ErrInvalidCoordinate)
	require.ErrorIs(t, board.Set(pos(3, 3), Cell(9)), ErrInvalidCell)

	require.NoError(t, board.Set(pos(3, 4), BlackKing))
	cell, err := board.Get(pos(3, 4))
	require.NoError(t, err)
	require.Equal(t, BlackKing, cell)
}

func TestBoard_StateIsCopy(t *testing.T) {
	board := NewBoardStart()

	state := board.State()
	state[5][0] = 0

	cells := board.Cells()
	cells[5][0] = Empty

	cell, err := board.Get(pos(5, 0))
	require.NoError(t, err)
	require.Equal(t, WhiteMan, cell)
}

func TestBoard_CapturingPieces(t *testing.T) {
	board := mustBoard(t,
		"00000003",
		emptyRow,
		"00030000",
		"00100000",
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
	)

	require.Equal(t, []Position{pos(3, 2)}, board.CapturingPieces(White))
	require.Empty(t, board.CapturingPieces(Black))

	require.Empty(t, NewBoardStart().CapturingPieces(White))
	require.Empty(t, NewBoardStart().CapturingPieces(Black))
}

func TestBoard_CanCaptureDirectionality(t *testing.T) {
	// White man at (3,2) with a black man behind it at (4,3).
	board := mustBoard(t,
		"00000003",
		emptyRow,
		emptyRow,
		"00100000",
		"00030000",
		emptyRow,
		emptyRow,
		emptyRow,
	)

	require.False(t, board.CanCapture(pos(3, 2), White, true))
	require.True(t, board.CanCapture(pos(3, 2), White, false))
	require.Empty(t, board.CapturingPieces(White))

	require.False(t, board.IsValidMove(pos(3, 2), pos(5, 4), White))
	require.True(t, board.IsValidMove(pos(3, 2), pos(2, 1), White))
	require.True(t, board.IsValidMove(pos(3, 2), pos(2, 3), White))

	// The same square holding a king captures backwards.
	require.NoError(t, board.Set(pos(3, 2), WhiteKing))

	require.True(t, board.CanCapture(pos(3, 2), White, true))
	require.Equal(t, []Position{pos(3, 2)}, board.CapturingPieces(White))
	require.True(t, board.IsValidMove(pos(3, 2), pos(5, 4), White))
	require.False(t, board.IsValidMove(pos(3, 2), pos(2, 1), White))
}

func TestBoard_CanCaptureWrongOwner(t *testing.T) {
	board := NewBoardStart()

	require.False(t, board.CanCapture(pos(5, 0), Black, false))
	require.False(t, board.CanCapture(pos(3, 3), White, false))
	require.False(t, board.CanCapture(pos(-1, 3), White, false))
}

func TestBoard_IsValidMoveForcedCapture(t *testing.T) {
	board := mustBoard(t,
		"00000003",
		emptyRow,
		emptyRow,
		emptyRow,
		"00030000",
		"00100010",
		emptyRow,
		emptyRow,
	)

	tests := []struct {
		name     string
		from, to Position
		want     bool
	}{
		{"jump over opponent", pos(5, 2), pos(3, 4), true},
		{"slide of capturing piece", pos(5, 2), pos(4, 1), false},
		{"slide of other piece", pos(5, 6), pos(4, 5), false},
		{"slide of other piece to edge", pos(5, 6), pos(4, 7), false},
		{"jump over empty square", pos(5, 2), pos(3, 0), false},
		{"backward jump", pos(5, 2), pos(7, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, board.IsValidMove(tt.from, tt.to, White))
		})
	}
}

func TestBoard_IsValidMoveSlides(t *testing.T) {
	board := NewBoardStart()

	tests := []struct {
		name     string
		from, to Position
		player   Player
		want     bool
	}{
		{"white forward left", pos(5, 2), pos(4, 1), White, true},
		{"white forward right", pos(5, 2), pos(4, 3), White, true},
		{"black forward", pos(2, 1), pos(3, 0), Black, true},
		{"white backward", pos(5, 2), pos(6, 1), White, false},
		{"white straight", pos(5, 2), pos(4, 2), White, false},
		{"white two squares", pos(5, 2), pos(3, 4), White, false},
		{"occupied destination", pos(6, 1), pos(5, 0), White, false},
		{"destination off board", pos(5, 0), pos(4, -1), White, false},
		{"source off board", pos(8, 0), pos(7, 1), White, false},
		{"opponent piece", pos(2, 1), pos(3, 0), White, false},
		{"empty source", pos(4, 1), pos(3, 0), White, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, board.IsValidMove(tt.from, tt.to, tt.player))
		})
	}
}

func TestBoard_ExecuteMove(t *testing.T) {
	board := NewBoardStart()

	captured, err := board.ExecuteMove(pos(5, 0), pos(4, 1))
	require.NoError(t, err)
	require.False(t, captured)

	cell, _ := board.Get(pos(4, 1))
	require.Equal(t, WhiteMan, cell)
	cell, _ = board.Get(pos(5, 0))
	require.Equal(t, Empty, cell)
	require.Equal(t, 12, board.CountPieces(White))
}

func TestBoard_ExecuteMoveCapture(t *testing.T) {
	board := mustBoard(t,
		"00000003",
		emptyRow,
		"00030000",
		"00100000",
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
	)

	captured, err := board.ExecuteMove(pos(3, 2), pos(1, 4))
	require.NoError(t, err)
	require.True(t, captured)

	cell, _ := board.Get(pos(2, 3))
	require.Equal(t, Empty, cell)
	cell, _ = board.Get(pos(1, 4))
	require.Equal(t, WhiteMan, cell)
	require.Equal(t, 1, board.CountPieces(Black))
}

func TestBoard_ExecuteMovePromotion(t *testing.T) {
	board := mustBoard(t,
		emptyRow,
		"00100000",
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		"03000000",
		emptyRow,
	)

	_, err := board.ExecuteMove(pos(1, 2), pos(0, 3))
	require.NoError(t, err)
	cell, _ := board.Get(pos(0, 3))
	require.Equal(t, WhiteKing, cell)

	_, err = board.ExecuteMove(pos(6, 1), pos(7, 0))
	require.NoError(t, err)
	cell, _ = board.Get(pos(7, 0))
	require.Equal(t, BlackKing, cell)

	// Kings stay kings when leaving and re-entering the far row.
	_, err = board.ExecuteMove(pos(0, 3), pos(1, 4))
	require.NoError(t, err)
	cell, _ = board.Get(pos(1, 4))
	require.Equal(t, WhiteKing, cell)
}

func TestBoard_ExecuteMoveErrors(t *testing.T) {
	board := NewBoardStart()

	_, err := board.ExecuteMove(pos(5, 0), pos(4, -1))
	require.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = board.ExecuteMove(pos(9, 0), pos(4, 1))
	require.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = board.ExecuteMove(pos(4, 1), pos(3, 0))
	require.ErrorIs(t, err, ErrEmptySource)

	require.Equal(t, NewBoardStart().Cells(), board.Cells())
}

func TestBoard_HasValidMoves(t *testing.T) {
	require.True(t, NewBoardStart().HasValidMoves(White))
	require.True(t, NewBoardStart().HasValidMoves(Black))

	blocked := mustBoard(t,
		"03000000",
		"10000000",
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
	)

	require.False(t, blocked.HasValidMoves(White))
	require.True(t, blocked.HasValidMoves(Black))
	require.False(t, NewBoardEmpty().HasValidMoves(White))
}

func TestBoard_Clone(t *testing.T) {
	board := NewBoardStart()
	clone := board.Clone()

	_, err := clone.ExecuteMove(pos(5, 0), pos(4, 1))
	require.NoError(t, err)

	require.NotEqual(t, board.Cells(), clone.Cells())
	require.Equal(t, board.Cells(), NewBoardStart().Cells())
}

func TestBoard_ASCIIArtLines(t *testing.T) {
	lines := NewBoardStart().ASCIIArtLines()

	require.Len(t, lines, Size+2)
	require.Equal(t, "+-0-1-2-3-4-5-6-7-+", lines[0])
	require.Equal(t, "0 . b . b . b . b |", lines[1])
	require.Equal(t, "4 . . . . . . . . |", lines[5])
	require.Equal(t, "7 w . w . w . w . |", lines[8])
	require.Equal(t, "+-----------------+", lines[9])
}

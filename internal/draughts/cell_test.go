package draughts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayerCodes(t *testing.T) {
	tests := []struct {
		code int
		want Player
	}{
		{0, NoPlayer},
		{1, White},
		{3, Black},
	}

	for _, tt := range tests {
		player, err := PlayerFromCode(tt.code)
		require.NoError(t, err)
		require.Equal(t, tt.want, player)
		require.Equal(t, tt.code, player.Code())
	}

	for _, code := range []int{-1, 2, 4, 100} {
		_, err := PlayerFromCode(code)
		require.ErrorIs(t, err, ErrInvalidPlayer)
	}
}

func TestPlayer_Opponent(t *testing.T) {
	require.Equal(t, Black, White.Opponent())
	require.Equal(t, White, Black.Opponent())
	require.Equal(t, NoPlayer, NoPlayer.Opponent())
}

func TestCellCodes(t *testing.T) {
	// Host encoding must stay bit-for-bit compatible.
	require.Equal(t, 0, Empty.Code())
	require.Equal(t, 1, WhiteMan.Code())
	require.Equal(t, 2, WhiteKing.Code())
	require.Equal(t, 3, BlackMan.Code())
	require.Equal(t, 4, BlackKing.Code())

	for code := 0; code <= 4; code++ {
		cell, err := CellFromCode(code)
		require.NoError(t, err)
		require.Equal(t, code, cell.Code())
	}

	for _, code := range []int{-1, 5, 42} {
		_, err := CellFromCode(code)
		require.ErrorIs(t, err, ErrInvalidCell)
	}

	// Owner codes match the player encoding.
	require.Equal(t, WhiteMan.Code(), WhiteMan.Owner().Code())
	require.Equal(t, BlackMan.Code(), BlackMan.Owner().Code())
}

func TestCell_Promoted(t *testing.T) {
	require.Equal(t, WhiteKing, WhiteMan.Promoted())
	require.Equal(t, BlackKing, BlackMan.Promoted())
	require.Equal(t, WhiteKing, WhiteKing.Promoted())
	require.Equal(t, BlackKing, BlackKing.Promoted())
	require.Equal(t, Empty, Empty.Promoted())

	require.True(t, WhiteKing.IsKing())
	require.False(t, BlackMan.IsKing())
	require.Equal(t, NoPlayer, Empty.Owner())
}

func TestPosition_InBounds(t *testing.T) {
	require.True(t, Position{Row: 0, Col: 0}.InBounds())
	require.True(t, Position{Row: 7, Col: 7}.InBounds())
	require.False(t, Position{Row: 8, Col: 0}.InBounds())
	require.False(t, Position{Row: 0, Col: -1}.InBounds())
}

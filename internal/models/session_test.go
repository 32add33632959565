package models

import (
	"testing"

	"github.com/lk16/draughts/internal/draughts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request MoveRequest
		wantErr bool
	}{
		{
			name:    "OK",
			request: MoveRequest{From: draughts.Position{Row: 5, Col: 0}, To: draughts.Position{Row: 4, Col: 1}},
		},
		{
			name:    "FromOffBoard",
			request: MoveRequest{From: draughts.Position{Row: -1, Col: 0}, To: draughts.Position{Row: 4, Col: 1}},
			wantErr: true,
		},
		{
			name:    "ToOffBoard",
			request: MoveRequest{From: draughts.Position{Row: 5, Col: 0}, To: draughts.Position{Row: 4, Col: 8}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, draughts.ErrInvalidCoordinate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSessionResponse(t *testing.T) {
	chainAt := draughts.Position{Row: 3, Col: 2}
	snapshot := draughts.Snapshot{
		Board:             draughts.NewBoardStart().State(),
		CurrentPlayer:     draughts.Black.Code(),
		ChainActive:       true,
		ChainAt:           &chainAt,
		PlayerOneCaptured: 2,
		PlayerTwoCaptured: 1,
	}

	resp := NewSessionResponse("abc", snapshot)
	assert.Equal(t, "abc", resp.ID)
	assert.Equal(t, 3, resp.CurrentPlayer)
	assert.False(t, resp.GameOver)
	assert.True(t, resp.ChainActive)
	assert.Equal(t, &chainAt, resp.ChainAt)
	assert.Equal(t, 2, resp.PlayerOneCaptured)

	snapshot.Winner = draughts.White.Code()
	resp = NewSessionResponse("abc", snapshot)
	assert.True(t, resp.GameOver)
	assert.Equal(t, 1, resp.Winner)
}

func TestBoardCodesValueAndScan(t *testing.T) {
	board := BoardCodes(draughts.NewBoardStart().State())

	value, err := board.Value()
	require.NoError(t, err)

	text, ok := value.(string)
	require.True(t, ok)
	assert.Equal(t, "{0,3,0,3,0,3,0,3,", text[:17])

	var scanned BoardCodes
	require.NoError(t, scanned.Scan([]byte(text)))
	assert.Equal(t, board, scanned)
}

func TestBoardCodesScanErrors(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"InvalidType", 123},
		{"Nil", nil},
		{"TooShort", []byte("{0,1,2}")},
		{"UnknownCode", []byte("{" + repeatCode("7", 64) + "}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b BoardCodes
			assert.Error(t, b.Scan(tt.input))
		})
	}
}

func repeatCode(code string, n int) string {
	s := code
	for i := 1; i < n; i++ {
		s += "," + code
	}
	return s
}

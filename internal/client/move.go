package client

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lk16/draughts/internal/draughts"
	"github.com/lk16/draughts/internal/models"
)

var ErrInvalidMoveNotation = errors.New("invalid move notation")

// ParseMove parses a move written as "row,col row,col", such as "5,0 4,1".
func ParseMove(s string) (models.MoveRequest, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return models.MoveRequest{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
	}

	from, err := parseSquare(fields[0])
	if err != nil {
		return models.MoveRequest{}, err
	}

	to, err := parseSquare(fields[1])
	if err != nil {
		return models.MoveRequest{}, err
	}

	move := models.MoveRequest{From: from, To: to}
	if err = move.Validate(); err != nil {
		return models.MoveRequest{}, err
	}

	return move, nil
}

func parseSquare(s string) (draughts.Position, error) {
	rowText, colText, ok := strings.Cut(s, ",")
	if !ok {
		return draughts.Position{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
	}

	row, err := strconv.Atoi(rowText)
	if err != nil {
		return draughts.Position{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
	}

	col, err := strconv.Atoi(colText)
	if err != nil {
		return draughts.Position{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
	}

	return draughts.Position{Row: row, Col: col}, nil
}

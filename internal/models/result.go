package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/lk16/draughts/internal/draughts"
)

// Result represents a finished game as archived in the database.
type Result struct {
	ID                string     `json:"id"                  db:"id"`
	Winner            int        `json:"winner"              db:"winner"`
	PlayerOneCaptured int        `json:"player_one_captured" db:"player_one_captured"`
	PlayerTwoCaptured int        `json:"player_two_captured" db:"player_two_captured"`
	Board             BoardCodes `json:"board"               db:"board"`
	FinishedAt        time.Time  `json:"finished_at"         db:"finished_at"`
}

// NewResult creates a Result from the snapshot of a finished game.
func NewResult(id string, snapshot draughts.Snapshot, finishedAt time.Time) Result {
	return Result{
		ID:                id,
		Winner:            snapshot.Winner,
		PlayerOneCaptured: snapshot.PlayerOneCaptured,
		PlayerTwoCaptured: snapshot.PlayerTwoCaptured,
		Board:             BoardCodes(snapshot.Board),
		FinishedAt:        finishedAt,
	}
}

// BoardCodes is a board in cell codes that is stored as a flat integer array.
type BoardCodes draughts.State

// Value implements the driver.Valuer interface for BoardCodes.
func (b BoardCodes) Value() (driver.Value, error) {
	codes := make(pq.Int64Array, 0, draughts.Size*draughts.Size)
	for _, row := range b {
		for _, code := range row {
			codes = append(codes, int64(code))
		}
	}
	return codes.Value()
}

// Scan implements the sql.Scanner interface for BoardCodes.
func (b *BoardCodes) Scan(value interface{}) error {
	var codes pq.Int64Array
	if err := codes.Scan(value); err != nil {
		return fmt.Errorf("cannot scan %T into BoardCodes: %w", value, err)
	}

	if len(codes) != draughts.Size*draughts.Size {
		return fmt.Errorf("cannot scan %d cells into BoardCodes", len(codes))
	}

	var state draughts.State
	for i, code := range codes {
		if _, err := draughts.CellFromCode(int(code)); err != nil {
			return err
		}
		state[i/draughts.Size][i%draughts.Size] = int(code)
	}

	*b = BoardCodes(state)
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/draughts/internal/draughts"
	"github.com/lk16/draughts/internal/models"
	"github.com/lk16/draughts/internal/registry"
	"github.com/lk16/draughts/internal/services"
)

var (
	ErrArchiveDisabled = errors.New("result archive is disabled")
	ErrResultNotFound  = errors.New("result not found")
)

const resultsSchema = `
	CREATE TABLE IF NOT EXISTS results (
		id UUID PRIMARY KEY,
		winner SMALLINT NOT NULL,
		player_one_captured SMALLINT NOT NULL,
		player_two_captured SMALLINT NOT NULL,
		board SMALLINT[] NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	)
`

// ResultRepository archives finished games in Postgres.
type ResultRepository struct {
	services *services.Services
}

func NewResultRepositoryFromServices(services *services.Services) *ResultRepository {
	return &ResultRepository{
		services: services,
	}
}

// Enabled checks if a database is configured.
func (repo *ResultRepository) Enabled() bool {
	return repo.services.Postgres != nil
}

// EnsureSchema creates the results table if it does not exist yet.
func (repo *ResultRepository) EnsureSchema(ctx context.Context) error {
	if !repo.Enabled() {
		return ErrArchiveDisabled
	}

	if _, err := repo.services.Postgres.ExecContext(ctx, resultsSchema); err != nil {
		return fmt.Errorf("error creating results table: %w", err)
	}
	return nil
}

// SaveResult archives the final state of a game. Saving the same game twice is a no-op.
func (repo *ResultRepository) SaveResult(ctx context.Context, id string, snapshot draughts.Snapshot) error {
	if !repo.Enabled() {
		return ErrArchiveDisabled
	}

	result := models.NewResult(id, snapshot, time.Now().UTC())

	query := `
		INSERT INTO results (id, winner, player_one_captured, player_two_captured, board, finished_at)
		VALUES (:id, :winner, :player_one_captured, :player_two_captured, :board, :finished_at)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := repo.services.Postgres.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("error saving result: %w", err)
	}
	return nil
}

// GetResult looks up the archived result of a game.
func (repo *ResultRepository) GetResult(ctx context.Context, id string) (models.Result, error) {
	if !repo.Enabled() {
		return models.Result{}, ErrArchiveDisabled
	}

	if _, err := uuid.Parse(id); err != nil {
		return models.Result{}, fmt.Errorf("%w: %s", registry.ErrInvalidHandle, id)
	}

	query := `
		SELECT id, winner, player_one_captured, player_two_captured, board, finished_at
		FROM results
		WHERE id = $1
	`

	var result models.Result
	err := repo.services.Postgres.GetContext(ctx, &result, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Result{}, ErrResultNotFound
	}

	if err != nil {
		return models.Result{}, fmt.Errorf("error getting result: %w", err)
	}

	return result, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/draughts/internal/config"
	"github.com/lk16/draughts/internal/draughts"
	"github.com/lk16/draughts/internal/models"
	"github.com/lk16/draughts/internal/registry"
	"github.com/lk16/draughts/internal/services"
)

// SessionRepository runs game sessions in memory and mirrors them to Redis,
// so sessions survive a restart of the server.
type SessionRepository struct {
	services  *services.Services
	snapshots *SnapshotStore
	stats     *StatsRepository
	results   *ResultRepository
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(c *fiber.Ctx) *SessionRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck

	return NewSessionRepositoryFromServices(services, cfg.SnapshotTTL)
}

func NewSessionRepositoryFromServices(services *services.Services, snapshotTTL time.Duration) *SessionRepository {
	return &SessionRepository{
		services:  services,
		snapshots: NewSnapshotStoreFromServices(services, snapshotTTL),
		stats:     NewStatsRepositoryFromServices(services),
		results:   NewResultRepositoryFromServices(services),
	}
}

// Create starts a new game.
func (repo *SessionRepository) Create(ctx context.Context) (models.SessionResponse, error) {
	sessions := repo.services.Sessions

	id, err := sessions.Create()
	if err != nil {
		return models.SessionResponse{}, err
	}

	snapshot, err := sessions.Snapshot(id)
	if err != nil {
		return models.SessionResponse{}, err
	}

	if err = repo.snapshots.Save(ctx, id, snapshot); err != nil {
		_ = sessions.Destroy(id)
		return models.SessionResponse{}, err
	}

	if err = repo.stats.GameStarted(ctx); err != nil {
		slog.Error("error counting started game", "session_id", id, "error", err)
	}

	return models.NewSessionResponse(id, snapshot), nil
}

// load makes sure the session is in memory, restoring it from its snapshot if needed.
func (repo *SessionRepository) load(ctx context.Context, id string) error {
	sessions := repo.services.Sessions

	if sessions.Has(id) {
		return nil
	}

	snapshot, err := repo.snapshots.Load(ctx, id)
	if errors.Is(err, ErrSnapshotNotFound) {
		return fmt.Errorf("%w: %s", registry.ErrSessionNotFound, id)
	}

	if err != nil {
		return err
	}

	err = sessions.Restore(id, snapshot)
	if errors.Is(err, registry.ErrHandleInUse) {
		// Restored concurrently by another request.
		return nil
	}

	if err != nil {
		return err
	}

	// A concurrent Destroy may have removed the snapshot after it was read.
	exists, err := repo.snapshots.Exists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		_ = sessions.Destroy(id)
		return fmt.Errorf("%w: %s", registry.ErrSessionNotFound, id)
	}

	slog.Info("restored session from snapshot", "session_id", id)
	return nil
}

// Get returns the full state of a session.
func (repo *SessionRepository) Get(ctx context.Context, id string) (models.SessionResponse, error) {
	if err := repo.load(ctx, id); err != nil {
		return models.SessionResponse{}, err
	}

	snapshot, err := repo.services.Sessions.Snapshot(id)
	if err != nil {
		return models.SessionResponse{}, err
	}

	return models.NewSessionResponse(id, snapshot), nil
}

// Board returns the board of a session in cell codes.
func (repo *SessionRepository) Board(ctx context.Context, id string) (models.BoardResponse, error) {
	if err := repo.load(ctx, id); err != nil {
		return models.BoardResponse{}, err
	}

	state, err := repo.services.Sessions.BoardState(id)
	if err != nil {
		return models.BoardResponse{}, err
	}

	return models.BoardResponse{Board: state}, nil
}

// Validate checks if the side to move may play the move.
func (repo *SessionRepository) Validate(ctx context.Context, id string, move models.MoveRequest) (models.ValidateResponse, error) {
	if err := repo.load(ctx, id); err != nil {
		return models.ValidateResponse{}, err
	}

	valid, err := repo.services.Sessions.ValidateMove(id, move.From, move.To)
	if err != nil {
		return models.ValidateResponse{}, err
	}

	return models.ValidateResponse{Valid: valid}, nil
}

// Play validates and executes a move, then persists the new state.
// When the move ends the game, the result is counted and archived.
func (repo *SessionRepository) Play(ctx context.Context, id string, move models.MoveRequest) (models.SessionResponse, error) {
	if err := repo.load(ctx, id); err != nil {
		return models.SessionResponse{}, err
	}

	persist := func(snapshot draughts.Snapshot) error {
		return repo.snapshots.Save(ctx, id, snapshot)
	}

	snapshot, err := repo.services.Sessions.Play(id, move.From, move.To, persist)
	if err != nil {
		return models.SessionResponse{}, err
	}

	if snapshot.Winner != draughts.NoPlayer.Code() {
		repo.finish(ctx, id, snapshot)
	}

	return models.NewSessionResponse(id, snapshot), nil
}

// finish records a finished game. Failures are logged, the game itself is already over.
func (repo *SessionRepository) finish(ctx context.Context, id string, snapshot draughts.Snapshot) {
	winner, err := draughts.PlayerFromCode(snapshot.Winner)
	if err != nil {
		slog.Error("invalid winner in snapshot", "session_id", id, "error", err)
		return
	}

	slog.Info("game finished", "session_id", id, "winner", winner)

	if err = repo.stats.GameFinished(ctx, winner); err != nil {
		slog.Error("error counting finished game", "session_id", id, "error", err)
	}

	if !repo.results.Enabled() {
		return
	}

	if err = repo.results.SaveResult(ctx, id, snapshot); err != nil {
		slog.Error("error archiving result", "session_id", id, "error", err)
	}
}

// Destroy removes a session from memory and from Redis.
// The snapshot is deleted before and after removing the session from memory,
// so neither a concurrent restore nor a move still being persisted can bring it back.
func (repo *SessionRepository) Destroy(ctx context.Context, id string) error {
	deletedBefore, err := repo.snapshots.Delete(ctx, id)
	if err != nil {
		return err
	}

	destroyErr := repo.services.Sessions.Destroy(id)
	if destroyErr != nil && !errors.Is(destroyErr, registry.ErrSessionNotFound) {
		return destroyErr
	}

	deletedAfter, err := repo.snapshots.Delete(ctx, id)
	if err != nil {
		return err
	}

	if destroyErr != nil && !deletedBefore && !deletedAfter {
		return destroyErr
	}

	return nil
}

// Result returns the archived result of a finished game.
func (repo *SessionRepository) Result(ctx context.Context, id string) (models.Result, error) {
	return repo.results.GetResult(ctx, id)
}

// Stats returns the game counters and the number of sessions in memory.
func (repo *SessionRepository) Stats(ctx context.Context) (models.Stats, error) {
	stats, err := repo.stats.GetStats(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	stats.LiveSessions = repo.services.Sessions.Len()
	return stats, nil
}

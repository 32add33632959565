package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/draughts/internal/draughts"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrTooManySessions  = errors.New("too many sessions")
	ErrInvalidHandle    = errors.New("invalid session handle")
	ErrHandleInUse      = errors.New("session handle already in use")
	ErrNonPositiveLimit = errors.New("session limit must be positive")
)

// Registry owns all live sessions and hands out opaque handles for them.
// Operations on different sessions run concurrently, operations on the same session are serialized.
type Registry struct {
	// sessions maps handles to live sessions
	sessions map[string]*entry

	// sessionsMutex protects sessions
	sessionsMutex sync.Mutex

	maxSessions int
	maxIdle     time.Duration
	logger      *slog.Logger

	// now is replaced in tests
	now func() time.Time
}

type entry struct {
	// mutex serializes operations on session and protects lastUsed and destroyed
	mutex    sync.Mutex
	session  *draughts.Session
	lastUsed time.Time

	// destroyed is set once the entry is removed by Destroy
	destroyed bool
}

// New creates a registry holding at most maxSessions sessions.
// When full, sessions idle for longer than maxIdle are evicted to make room.
func New(maxSessions int, maxIdle time.Duration, logger *slog.Logger) (*Registry, error) {
	if maxSessions <= 0 {
		return nil, ErrNonPositiveLimit
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Registry{
		sessions:    make(map[string]*entry),
		maxSessions: maxSessions,
		maxIdle:     maxIdle,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Create starts a new game in the starting position and returns its handle.
func (r *Registry) Create() (string, error) {
	id := uuid.New().String()

	r.sessionsMutex.Lock()
	defer r.sessionsMutex.Unlock()

	if err := r.makeRoom(); err != nil {
		return "", err
	}

	r.sessions[id] = &entry{
		session:  draughts.NewSession(draughts.WithLogger(r.logger.With("session_id", id))),
		lastUsed: r.now(),
	}

	r.logger.Debug("created session", "session_id", id, "sessions", len(r.sessions))
	return id, nil
}

// Restore registers a session recreated from a snapshot under an existing handle.
func (r *Registry) Restore(id string, snapshot draughts.Snapshot) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, id)
	}

	session, err := draughts.RestoreSession(snapshot, draughts.WithLogger(r.logger.With("session_id", id)))
	if err != nil {
		return fmt.Errorf("restore session %s: %w", id, err)
	}

	r.sessionsMutex.Lock()
	defer r.sessionsMutex.Unlock()

	if _, ok := r.sessions[id]; ok {
		return fmt.Errorf("%w: %s", ErrHandleInUse, id)
	}

	if err = r.makeRoom(); err != nil {
		return err
	}

	r.sessions[id] = &entry{session: session, lastUsed: r.now()}

	r.logger.Debug("restored session", "session_id", id)
	return nil
}

// makeRoom evicts idle sessions if the registry is full. It assumes sessionsMutex is locked.
func (r *Registry) makeRoom() error {
	if len(r.sessions) < r.maxSessions {
		return nil
	}

	r.evictIdle()

	if len(r.sessions) >= r.maxSessions {
		return ErrTooManySessions
	}
	return nil
}

// evictIdle removes sessions unused for longer than maxIdle. It assumes sessionsMutex is locked.
func (r *Registry) evictIdle() {
	if r.maxIdle <= 0 {
		return
	}

	cutoff := r.now().Add(-r.maxIdle)
	for id, e := range r.sessions {
		e.mutex.Lock()
		idle := e.lastUsed.Before(cutoff)
		e.mutex.Unlock()

		if idle {
			delete(r.sessions, id)
			r.logger.Info("evicted idle session", "session_id", id)
		}
	}
}

// Destroy removes a session. It waits for running operations on the session to finish,
// operations still waiting for the session fail with ErrSessionNotFound.
func (r *Registry) Destroy(id string) error {
	r.sessionsMutex.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.sessionsMutex.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e.mutex.Lock()
	e.destroyed = true
	e.mutex.Unlock()

	return nil
}

// Has checks if a session is registered under id.
func (r *Registry) Has(id string) bool {
	r.sessionsMutex.Lock()
	defer r.sessionsMutex.Unlock()

	_, ok := r.sessions[id]
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.sessionsMutex.Lock()
	defer r.sessionsMutex.Unlock()

	return len(r.sessions)
}

// with runs f on the session registered under id while holding its lock.
func (r *Registry) with(id string, f func(*draughts.Session) error) error {
	r.sessionsMutex.Lock()
	e, ok := r.sessions[id]
	r.sessionsMutex.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.destroyed {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e.lastUsed = r.now()
	return f(e.session)
}

// ValidateMove checks if the side to move may play from -> to.
func (r *Registry) ValidateMove(id string, from, to draughts.Position) (bool, error) {
	var valid bool
	err := r.with(id, func(s *draughts.Session) error {
		valid = s.ValidateMove(from, to)
		return nil
	})
	return valid, err
}

// ExecuteMove applies a move without validating it.
func (r *Registry) ExecuteMove(id string, from, to draughts.Position) error {
	return r.with(id, func(s *draughts.Session) error {
		return s.ExecuteMove(from, to)
	})
}

// Play validates and executes a move atomically and returns the resulting state.
// If persist is not nil it receives the new state while the session is still locked,
// so states of one session are persisted in the order the moves were played.
func (r *Registry) Play(id string, from, to draughts.Position, persist func(draughts.Snapshot) error) (draughts.Snapshot, error) {
	var snapshot draughts.Snapshot
	err := r.with(id, func(s *draughts.Session) error {
		if err := s.Play(from, to); err != nil {
			return err
		}
		snapshot = s.Snapshot()

		if persist == nil {
			return nil
		}
		return persist(snapshot)
	})
	return snapshot, err
}

// Snapshot returns the complete state of a session.
func (r *Registry) Snapshot(id string) (draughts.Snapshot, error) {
	var snapshot draughts.Snapshot
	err := r.with(id, func(s *draughts.Session) error {
		s.IsGameOver()
		snapshot = s.Snapshot()
		return nil
	})
	return snapshot, err
}

// BoardState returns the board of a session in host encoding.
func (r *Registry) BoardState(id string) (draughts.State, error) {
	var state draughts.State
	err := r.with(id, func(s *draughts.Session) error {
		state = s.BoardState()
		return nil
	})
	return state, err
}

// PlayerOneCaptured returns the number of pieces captured by White.
func (r *Registry) PlayerOneCaptured(id string) (int, error) {
	var count int
	err := r.with(id, func(s *draughts.Session) error {
		count = s.PlayerOneCaptured()
		return nil
	})
	return count, err
}

// PlayerTwoCaptured returns the number of pieces captured by Black.
func (r *Registry) PlayerTwoCaptured(id string) (int, error) {
	var count int
	err := r.with(id, func(s *draughts.Session) error {
		count = s.PlayerTwoCaptured()
		return nil
	})
	return count, err
}

// IsGameOver checks if the game has ended.
func (r *Registry) IsGameOver(id string) (bool, error) {
	var over bool
	err := r.with(id, func(s *draughts.Session) error {
		over = s.IsGameOver()
		return nil
	})
	return over, err
}

// Winner returns the winner, or draughts.NoPlayer while the game is ongoing.
func (r *Registry) Winner(id string) (draughts.Player, error) {
	var winner draughts.Player
	err := r.with(id, func(s *draughts.Session) error {
		winner = s.Winner()
		return nil
	})
	return winner, err
}

// CurrentPlayer returns the side to move.
func (r *Registry) CurrentPlayer(id string) (draughts.Player, error) {
	var player draughts.Player
	err := r.with(id, func(s *draughts.Session) error {
		player = s.CurrentPlayer()
		return nil
	})
	return player, err
}

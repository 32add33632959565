package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lk16/draughts/internal/draughts"
	"github.com/lk16/draughts/internal/services"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "session:"

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore keeps the latest state of every live session in Redis.
type SnapshotStore struct {
	services *services.Services
	ttl      time.Duration
}

func NewSnapshotStoreFromServices(services *services.Services, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		services: services,
		ttl:      ttl,
	}
}

func snapshotKey(id string) string {
	return snapshotKeyPrefix + id
}

// Save stores a snapshot and resets its TTL.
func (store *SnapshotStore) Save(ctx context.Context, id string, snapshot draughts.Snapshot) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error marshaling snapshot: %w", err)
	}

	err = store.services.Redis.Set(ctx, snapshotKey(id), jsonData, store.ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing snapshot: %w", err)
	}

	return nil
}

// Load retrieves the snapshot of a session.
func (store *SnapshotStore) Load(ctx context.Context, id string) (draughts.Snapshot, error) {
	jsonData, err := store.services.Redis.Get(ctx, snapshotKey(id)).Bytes()
	if err == redis.Nil {
		return draughts.Snapshot{}, ErrSnapshotNotFound
	}

	if err != nil {
		return draughts.Snapshot{}, fmt.Errorf("error getting snapshot: %w", err)
	}

	var snapshot draughts.Snapshot
	if err = json.Unmarshal(jsonData, &snapshot); err != nil {
		return draughts.Snapshot{}, fmt.Errorf("error unmarshaling snapshot: %w", err)
	}

	return snapshot, nil
}

// Delete removes the snapshot of a session. It reports whether a snapshot existed.
func (store *SnapshotStore) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := store.services.Redis.Del(ctx, snapshotKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("error deleting snapshot: %w", err)
	}

	return deleted > 0, nil
}

// Exists checks if a session has a snapshot.
func (store *SnapshotStore) Exists(ctx context.Context, id string) (bool, error) {
	count, err := store.services.Redis.Exists(ctx, snapshotKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("error checking snapshot: %w", err)
	}

	return count > 0, nil
}

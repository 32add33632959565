package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lk16/draughts/internal/draughts"
	"github.com/lk16/draughts/internal/models"
	"github.com/lk16/draughts/internal/services"
)

const (
	statsKey           = "game_stats"
	statsGamesStarted  = "games_started"
	statsGamesFinished = "games_finished"
	statsWhiteWins     = "wins:white"
	statsBlackWins     = "wins:black"
)

// StatsRepository keeps game counters in a Redis hash.
type StatsRepository struct {
	services *services.Services
}

func NewStatsRepositoryFromServices(services *services.Services) *StatsRepository {
	return &StatsRepository{
		services: services,
	}
}

// GameStarted counts a newly created game.
func (repo *StatsRepository) GameStarted(ctx context.Context) error {
	if err := repo.services.Redis.HIncrBy(ctx, statsKey, statsGamesStarted, 1).Err(); err != nil {
		return fmt.Errorf("error updating stats: %w", err)
	}
	return nil
}

// GameFinished counts a finished game and the win of winner.
func (repo *StatsRepository) GameFinished(ctx context.Context, winner draughts.Player) error {
	pipe := repo.services.Redis.Pipeline()
	pipe.HIncrBy(ctx, statsKey, statsGamesFinished, 1)

	switch winner {
	case draughts.White:
		pipe.HIncrBy(ctx, statsKey, statsWhiteWins, 1)
	case draughts.Black:
		pipe.HIncrBy(ctx, statsKey, statsBlackWins, 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error updating stats: %w", err)
	}
	return nil
}

// GetStats returns all counters. LiveSessions is left for the caller to fill in.
func (repo *StatsRepository) GetStats(ctx context.Context) (models.Stats, error) {
	values, err := repo.services.Redis.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return models.Stats{}, fmt.Errorf("error getting stats: %w", err)
	}

	var stats models.Stats

	fields := map[string]*int64{
		statsGamesStarted:  &stats.GamesStarted,
		statsGamesFinished: &stats.GamesFinished,
		statsWhiteWins:     &stats.WhiteWins,
		statsBlackWins:     &stats.BlackWins,
	}

	for field, target := range fields {
		value, ok := values[field]
		if !ok {
			continue
		}

		*target, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			return models.Stats{}, fmt.Errorf("error parsing stats field %s: %w", field, err)
		}
	}

	return stats, nil
}

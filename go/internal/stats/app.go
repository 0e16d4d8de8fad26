package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StatsRepository defines what the app layer needs from the repository.
type StatsRepository interface {
	RecordScore(ctx context.Context, userID, roomID uuid.UUID, score int) error
	UpsertStats(ctx context.Context, userID uuid.UUID, score int, won bool) error
}

// App handles durable score recording at game end.
type App struct {
	repo StatsRepository
}

// NewApp creates a new stats App.
func NewApp(repo StatsRepository) *App {
	return &App{repo: repo}
}

// RecordScore writes one per-game score row for a player.
func (a *App) RecordScore(ctx context.Context, userID, roomID uuid.UUID, score int) error {
	if err := a.repo.RecordScore(ctx, userID, roomID, score); err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// UpsertStats folds a finished game into a player's aggregate stats.
func (a *App) UpsertStats(ctx context.Context, userID uuid.UUID, score int, won bool) error {
	if err := a.repo.UpsertStats(ctx, userID, score, won); err != nil {
		return fmt.Errorf("failed to upsert stats: %w", err)
	}
	return nil
}

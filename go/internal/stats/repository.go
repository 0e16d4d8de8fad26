package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB defines what the repository needs from the database layer.
// *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository implements durable score and statistics writes over Postgres.
type Repository struct {
	db DB
}

// NewRepository creates a new stats repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// RecordScore inserts one per-game score row for a player.
func (r *Repository) RecordScore(ctx context.Context, userID, roomID uuid.UUID, score int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO player_scores (id, user_id, room_id, score)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, roomID, score)
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// UpsertStats folds one finished game into a player's cumulative stats.
func (r *Repository) UpsertStats(ctx context.Context, userID uuid.UUID, score int, won bool) error {
	wonInc := 0
	if won {
		wonInc = 1
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO player_stats (user_id, games_played, games_won, total_score, updated_at)
		 VALUES ($1, 1, $2, $3, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			games_played = player_stats.games_played + 1,
			games_won    = player_stats.games_won + $2,
			total_score  = player_stats.total_score + $3,
			updated_at   = now()`,
		userID, wonInc, score)
	if err != nil {
		return fmt.Errorf("failed to upsert stats: %w", err)
	}
	return nil
}

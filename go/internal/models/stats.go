package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerScore is one durable per-game score record for one player.
type PlayerScore struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	RoomID     uuid.UUID `json:"room_id"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}

// PlayerStats holds a player's cumulative statistics across games.
type PlayerStats struct {
	UserID      uuid.UUID `json:"user_id"`
	GamesPlayed int       `json:"games_played"`
	GamesWon    int       `json:"games_won"`
	TotalScore  int       `json:"total_score"`
	UpdatedAt   time.Time `json:"updated_at"`
}

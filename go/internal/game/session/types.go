package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quizclash/quizclash/go/internal/game/events"
	"github.com/quizclash/quizclash/go/internal/models"
)

// Status defines the lifecycle state of a live session.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Config holds tunable game settings shared by every session.
type Config struct {
	RoundDuration    time.Duration
	QuestionsPerGame int
}

// DefaultConfig returns the stock game settings.
func DefaultConfig() Config {
	return Config{
		RoundDuration:    15 * time.Second,
		QuestionsPerGame: 5,
	}
}

// Subscriber is one delivery handle for room events. A websocket
// connection is the usual implementation, but anything with a stable
// connection identity works.
type Subscriber interface {
	// ID returns the transient connection identity.
	ID() string
	// Send delivers an event. Implementations must not block the caller.
	Send(ev events.Event)
}

// EventSink receives a copy of every room broadcast. Used to mirror
// events onto an external bus.
type EventSink interface {
	Publish(roomCode string, ev events.Event)
}

// QuestionSource supplies the ordered question set for a game.
type QuestionSource interface {
	SampleQuestions(ctx context.Context, categories []string, difficulty models.Difficulty, count int) ([]models.Question, error)
}

// PersistenceGateway records durable per-game scores and aggregate
// player statistics at game end.
type PersistenceGateway interface {
	RecordScore(ctx context.Context, userID, roomID uuid.UUID, score int) error
	UpsertStats(ctx context.Context, userID uuid.UUID, score int, won bool) error
}

// RoomStatusStore updates the durable room row as the session moves
// through its lifecycle.
type RoomStatusStore interface {
	UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error
}

// Deps bundles the external collaborators a session calls into.
type Deps struct {
	Questions   QuestionSource
	Persistence PersistenceGateway
	Rooms       RoomStatusStore
}

// Player is one roster entry. UserID is the durable identity; ConnID is
// the transient connection identity and is kept separate so a future
// reconnect can reclaim the seat.
type Player struct {
	UserID   uuid.UUID
	ConnID   string
	Username string
	Avatar   string
	Score    int

	// answer is the current-round answer slot; nil means unanswered.
	answer *string
}

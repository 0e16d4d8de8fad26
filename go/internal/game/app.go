package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/quizclash/quizclash/go/internal/game/session"
	"github.com/quizclash/quizclash/go/internal/models"
)

// ErrRoomNotInitialized is returned when an operation requires a live
// session that no player has materialized yet.
var ErrRoomNotInitialized = errors.New("room not initialized")

// RoomLookup resolves durable room rows.
type RoomLookup interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
}

// UserLookup resolves player profiles.
type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// App routes inbound game events to the right live session. It owns no
// game state itself; the session registry does.
type App struct {
	rooms    RoomLookup
	users    UserLookup
	registry *session.Registry
}

// NewApp creates a new game App.
func NewApp(rooms RoomLookup, users UserLookup, registry *session.Registry) *App {
	return &App{
		rooms:    rooms,
		users:    users,
		registry: registry,
	}
}

// Registry exposes the session registry for transport-level disconnect
// reconciliation.
func (a *App) Registry() *session.Registry {
	return a.registry
}

// JoinRoom seats a connection in a room, lazily materializing the live
// session on first join.
func (a *App) JoinRoom(ctx context.Context, sub session.Subscriber, roomID, userID uuid.UUID) error {
	room, err := a.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	sess := a.registry.GetOrCreate(room)
	return sess.Join(ctx, sub, user)
}

// StartGame loads questions for a room's session and begins round 0.
func (a *App) StartGame(ctx context.Context, roomID uuid.UUID, categories []string, difficulty models.Difficulty) error {
	room, err := a.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	sess, ok := a.registry.Get(room.RoomCode)
	if !ok {
		return ErrRoomNotInitialized
	}
	return sess.Start(ctx, categories, difficulty)
}

// SubmitAnswer records a player's answer for the current round.
func (a *App) SubmitAnswer(ctx context.Context, roomCode string, userID uuid.UUID, answer string) error {
	sess, ok := a.registry.Get(roomCode)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotInitialized, roomCode)
	}
	return sess.SubmitAnswer(ctx, userID, answer)
}

// SendMessage appends to a room's chat log and broadcasts the message.
func (a *App) SendMessage(ctx context.Context, roomCode string, userID uuid.UUID, message string) error {
	sess, ok := a.registry.Get(roomCode)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotInitialized, roomCode)
	}
	return sess.SendMessage(ctx, userID, message)
}

// Disconnect reconciles a closed connection against every live session.
func (a *App) Disconnect(connID string) {
	a.registry.DropConnection(connID)
}

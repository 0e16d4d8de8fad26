package rooms

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/quizclash/quizclash/go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	roomCodeLength  = 6
	roomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RoomsRepository defines what the app layer needs from the repository.
type RoomsRepository interface {
	CreateRoom(ctx context.Context, roomCode string) (*models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetRoomByCode(ctx context.Context, roomCode string) (*models.Room, error)
	UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error
}

// App handles room business logic.
type App struct {
	repo RoomsRepository
}

// NewApp creates a new rooms App.
func NewApp(repo RoomsRepository) *App {
	return &App{repo: repo}
}

// CreateRoom allocates a fresh room code and creates the durable room row.
func (a *App) CreateRoom(ctx context.Context) (*models.Room, error) {
	room, err := a.repo.CreateRoom(ctx, generateRoomCode())
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	log.Info().
		Str("room_id", room.ID.String()).
		Str("room_code", room.RoomCode).
		Msg("room created")
	return room, nil
}

// GetRoom retrieves a room by ID.
func (a *App) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return a.repo.GetRoom(ctx, id)
}

// JoinRoom resolves a room code for a joining player. Only rooms still
// in waiting status accept new joins through the lobby flow.
func (a *App) JoinRoom(ctx context.Context, roomCode string) (*models.Room, error) {
	room, err := a.repo.GetRoomByCode(ctx, roomCode)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomStatusWaiting {
		return nil, ErrRoomNotJoinable
	}
	return room, nil
}

// UpdateRoomStatus moves a room through its lifecycle.
func (a *App) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error {
	if err := a.repo.UpdateRoomStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}

	log.Info().
		Str("room_id", id.String()).
		Str("status", string(status)).
		Msg("room status updated")
	return nil
}

func generateRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		code[i] = roomCodeCharset[rand.IntN(len(roomCodeCharset))]
	}
	return string(code)
}

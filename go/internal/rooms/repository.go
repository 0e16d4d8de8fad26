package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quizclash/quizclash/go/internal/models"
)

// DB defines what the repository needs from the database layer.
// *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements room data access over Postgres.
type Repository struct {
	db DB
}

// NewRepository creates a new rooms repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// CreateRoom inserts a new room in waiting status.
func (r *Repository) CreateRoom(ctx context.Context, roomCode string) (*models.Room, error) {
	room := models.Room{
		ID:       uuid.New(),
		RoomCode: roomCode,
		Status:   models.RoomStatusWaiting,
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO game_rooms (id, room_code, status)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		room.ID, room.RoomCode, room.Status,
	).Scan(&room.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return &room, nil
}

// GetRoom retrieves a room by ID.
func (r *Repository) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return r.scanRoom(r.db.QueryRow(ctx,
		`SELECT id, room_code, status, created_at FROM game_rooms WHERE id = $1`, id))
}

// GetRoomByCode retrieves a room by its join code.
func (r *Repository) GetRoomByCode(ctx context.Context, roomCode string) (*models.Room, error) {
	return r.scanRoom(r.db.QueryRow(ctx,
		`SELECT id, room_code, status, created_at FROM game_rooms WHERE room_code = $1`, roomCode))
}

// UpdateRoomStatus moves a room through its lifecycle.
func (r *Repository) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE game_rooms SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *Repository) scanRoom(row pgx.Row) (*models.Room, error) {
	var room models.Room
	err := row.Scan(&room.ID, &room.RoomCode, &room.Status, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomStatus defines the lifecycle state of a game room.
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusActive   RoomStatus = "active"
	RoomStatusFinished RoomStatus = "finished"
)

// Room represents a game room. The durable row is owned by the rooms
// service; the live session for a room is materialized in memory on
// first join and torn down when the game finishes.
type Room struct {
	ID        uuid.UUID  `json:"id"`
	RoomCode  string     `json:"room_code"`
	Status    RoomStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

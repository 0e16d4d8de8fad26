package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered player profile.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

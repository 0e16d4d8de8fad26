package models

import "time"

// ChatMessage is a single entry in a session's append-only chat log.
type ChatMessage struct {
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

package session

import "errors"

var (
	// ErrSessionExists is returned by Registry.Create when a live
	// session already holds the room code.
	ErrSessionExists = errors.New("session already exists for room code")

	// ErrSessionClosed is returned when an event targets a session that
	// has finished and been torn down.
	ErrSessionClosed = errors.New("room not found")

	// ErrGameAlreadyStarted is returned when start is requested outside
	// the waiting state.
	ErrGameAlreadyStarted = errors.New("game already started")

	// ErrPlayerNotFound is returned when an event names a user that is
	// not on the session roster.
	ErrPlayerNotFound = errors.New("player not found in room")
)

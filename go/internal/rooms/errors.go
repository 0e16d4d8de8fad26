package rooms

import "errors"

// ErrRoomNotFound is returned when no room matches the given id or code.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomNotJoinable is returned when a room exists but is no longer
// accepting players.
var ErrRoomNotJoinable = errors.New("room is not accepting players")

package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/quizclash/quizclash/go/internal/game/events"
	"github.com/quizclash/quizclash/go/internal/game/session"
	"github.com/quizclash/quizclash/go/internal/models"
	"github.com/rs/zerolog/log"
)

// GameHandler defines what the gateway needs from the game layer.
type GameHandler interface {
	JoinRoom(ctx context.Context, sub session.Subscriber, roomID, userID uuid.UUID) error
	StartGame(ctx context.Context, roomID uuid.UUID, categories []string, difficulty models.Difficulty) error
	SubmitAnswer(ctx context.Context, roomCode string, userID uuid.UUID, answer string) error
	SendMessage(ctx context.Context, roomCode string, userID uuid.UUID, message string) error
	Disconnect(connID string)
}

// Action identifies an inbound client message.
type Action string

const (
	ActionJoinRoom     Action = "joinRoom"
	ActionStartGame    Action = "startGame"
	ActionSubmitAnswer Action = "submitAnswer"
	ActionSendMessage  Action = "sendMessage"
)

// ClientMessage is the envelope for every inbound client message.
type ClientMessage struct {
	Action Action          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// JoinRoomRequest asks to seat this connection in a room.
type JoinRoomRequest struct {
	RoomID uuid.UUID `json:"roomId"`
	UserID uuid.UUID `json:"userId"`
}

// StartGameRequest asks to begin the game for a room.
type StartGameRequest struct {
	RoomID     uuid.UUID         `json:"roomId"`
	Categories []string          `json:"categories"`
	Difficulty models.Difficulty `json:"difficulty"`
}

// SubmitAnswerRequest carries one player's answer for the open round.
type SubmitAnswerRequest struct {
	RoomCode string    `json:"roomCode"`
	UserID   uuid.UUID `json:"userId"`
	Answer   string    `json:"answer"`
}

// SendMessageRequest carries one chat message.
type SendMessageRequest struct {
	RoomCode string    `json:"roomCode"`
	UserID   uuid.UUID `json:"userId"`
	Message  string    `json:"message"`
}

// handleClientMessage parses an inbound message and dispatches it to the
// game handler. Handler errors come back to this connection only, as an
// error event; they never touch other subscribers.
func (c *Connection) handleClientMessage(ctx context.Context, message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Warn().Err(err).Str("conn_id", c.id).Msg("malformed client message")
		c.sendError("", "malformed message")
		return
	}

	if err := c.dispatch(ctx, msg); err != nil {
		log.Warn().
			Err(err).
			Str("conn_id", c.id).
			Str("action", string(msg.Action)).
			Msg("client action failed")
		c.sendError("", err.Error())
	}
}

func (c *Connection) dispatch(ctx context.Context, msg ClientMessage) error {
	handler := c.manager.handler

	switch msg.Action {
	case ActionJoinRoom:
		var req JoinRoomRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return fmt.Errorf("invalid joinRoom payload: %w", err)
		}
		return handler.JoinRoom(ctx, c, req.RoomID, req.UserID)

	case ActionStartGame:
		var req StartGameRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return fmt.Errorf("invalid startGame payload: %w", err)
		}
		return handler.StartGame(ctx, req.RoomID, req.Categories, req.Difficulty)

	case ActionSubmitAnswer:
		var req SubmitAnswerRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return fmt.Errorf("invalid submitAnswer payload: %w", err)
		}
		return handler.SubmitAnswer(ctx, req.RoomCode, req.UserID, req.Answer)

	case ActionSendMessage:
		var req SendMessageRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return fmt.Errorf("invalid sendMessage payload: %w", err)
		}
		return handler.SendMessage(ctx, req.RoomCode, req.UserID, req.Message)

	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}

func (c *Connection) sendError(roomCode, reason string) {
	c.Send(events.New(roomCode, events.EventTypeError, events.ErrorPayload{
		Reason: reason,
	}))
}

package events

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Event is the envelope for every message pushed to room subscribers.
type Event struct {
	RoomCode  string          `json:"room_code"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType identifies the kind of game event.
type EventType string

const (
	EventTypePlayerJoined   EventType = "playerJoined"
	EventTypeChatHistory    EventType = "chatHistory"
	EventTypeGameStarted    EventType = "gameStarted"
	EventTypeNextQuestion   EventType = "nextQuestion"
	EventTypeAnswerFeedback EventType = "answerFeedback"
	EventTypeScoreUpdate    EventType = "scoreUpdate"
	EventTypeNewMessage     EventType = "newMessage"
	EventTypeGameEnded      EventType = "gameEnded"
	EventTypeError          EventType = "error"
)

// New builds an event envelope around a payload. Marshal failures are
// logged and produce an event with empty data rather than failing the
// calling handler.
func New(roomCode string, t EventType, payload any) Event {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().
			Err(err).
			Str("room_code", roomCode).
			Str("event_type", string(t)).
			Msg("failed to marshal event payload")
	}
	return Event{
		RoomCode:  roomCode,
		Type:      t,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// ParseEventPayload parses event data into the matching payload struct.
// Unknown event types return nil.
func ParseEventPayload(ev *Event) (any, error) {
	switch ev.Type {
	case EventTypePlayerJoined:
		return unmarshal[PlayerJoinedPayload](ev.Data)
	case EventTypeChatHistory:
		return unmarshal[ChatHistoryPayload](ev.Data)
	case EventTypeGameStarted:
		return unmarshal[GameStartedPayload](ev.Data)
	case EventTypeNextQuestion:
		return unmarshal[CurrentQuestion](ev.Data)
	case EventTypeAnswerFeedback:
		return unmarshal[AnswerFeedbackPayload](ev.Data)
	case EventTypeScoreUpdate:
		return unmarshal[ScoreUpdatePayload](ev.Data)
	case EventTypeNewMessage:
		return unmarshal[NewMessagePayload](ev.Data)
	case EventTypeGameEnded:
		return unmarshal[GameEndedPayload](ev.Data)
	case EventTypeError:
		return unmarshal[ErrorPayload](ev.Data)
	default:
		return nil, nil
	}
}

func unmarshal[T any](data json.RawMessage) (T, error) {
	var payload T
	err := json.Unmarshal(data, &payload)
	return payload, err
}

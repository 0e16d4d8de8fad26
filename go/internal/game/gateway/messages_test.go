package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/quizclash/quizclash/go/internal/game/events"
	"github.com/quizclash/quizclash/go/internal/game/session"
	"github.com/quizclash/quizclash/go/internal/models"
)

type handlerCall struct {
	action   Action
	roomID   uuid.UUID
	roomCode string
	userID   uuid.UUID
	value    string
}

type fakeGameHandler struct {
	calls []handlerCall
	err   error
}

func (f *fakeGameHandler) JoinRoom(ctx context.Context, sub session.Subscriber, roomID, userID uuid.UUID) error {
	f.calls = append(f.calls, handlerCall{action: ActionJoinRoom, roomID: roomID, userID: userID})
	return f.err
}

func (f *fakeGameHandler) StartGame(ctx context.Context, roomID uuid.UUID, categories []string, difficulty models.Difficulty) error {
	f.calls = append(f.calls, handlerCall{action: ActionStartGame, roomID: roomID, value: string(difficulty)})
	return f.err
}

func (f *fakeGameHandler) SubmitAnswer(ctx context.Context, roomCode string, userID uuid.UUID, answer string) error {
	f.calls = append(f.calls, handlerCall{action: ActionSubmitAnswer, roomCode: roomCode, userID: userID, value: answer})
	return f.err
}

func (f *fakeGameHandler) SendMessage(ctx context.Context, roomCode string, userID uuid.UUID, message string) error {
	f.calls = append(f.calls, handlerCall{action: ActionSendMessage, roomCode: roomCode, userID: userID, value: message})
	return f.err
}

func (f *fakeGameHandler) Disconnect(connID string) {}

func newTestConnection(handler GameHandler) *Connection {
	return &Connection{
		id:      "conn-test",
		send:    make(chan []byte, 8),
		manager: NewConnectionManager(handler, DefaultConnectionConfig()),
	}
}

func TestDispatchRoutesActions(t *testing.T) {
	roomID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name    string
		message string
		want    handlerCall
	}{
		{
			name:    "joinRoom",
			message: fmt.Sprintf(`{"action":"joinRoom","data":{"roomId":%q,"userId":%q}}`, roomID, userID),
			want:    handlerCall{action: ActionJoinRoom, roomID: roomID, userID: userID},
		},
		{
			name:    "startGame",
			message: fmt.Sprintf(`{"action":"startGame","data":{"roomId":%q,"categories":["general"],"difficulty":"easy"}}`, roomID),
			want:    handlerCall{action: ActionStartGame, roomID: roomID, value: "easy"},
		},
		{
			name:    "submitAnswer",
			message: fmt.Sprintf(`{"action":"submitAnswer","data":{"roomCode":"ABC123","userId":%q,"answer":"42"}}`, userID),
			want:    handlerCall{action: ActionSubmitAnswer, roomCode: "ABC123", userID: userID, value: "42"},
		},
		{
			name:    "sendMessage",
			message: fmt.Sprintf(`{"action":"sendMessage","data":{"roomCode":"ABC123","userId":%q,"message":"gg"}}`, userID),
			want:    handlerCall{action: ActionSendMessage, roomCode: "ABC123", userID: userID, value: "gg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &fakeGameHandler{}
			conn := newTestConnection(handler)

			conn.handleClientMessage(context.Background(), []byte(tt.message))

			if len(handler.calls) != 1 {
				t.Fatalf("expected 1 handler call, got %d", len(handler.calls))
			}
			if handler.calls[0] != tt.want {
				t.Fatalf("got call %+v, want %+v", handler.calls[0], tt.want)
			}
		})
	}
}

func TestDispatchUnknownActionSendsError(t *testing.T) {
	handler := &fakeGameHandler{}
	conn := newTestConnection(handler)

	conn.handleClientMessage(context.Background(), []byte(`{"action":"teleport","data":{}}`))

	if len(handler.calls) != 0 {
		t.Fatalf("expected no handler calls, got %d", len(handler.calls))
	}
	assertErrorEvent(t, conn)
}

func TestDispatchHandlerErrorReachesOnlyThisConnection(t *testing.T) {
	handler := &fakeGameHandler{err: errors.New("room not found")}
	conn := newTestConnection(handler)

	msg := fmt.Sprintf(`{"action":"joinRoom","data":{"roomId":%q,"userId":%q}}`, uuid.New(), uuid.New())
	conn.handleClientMessage(context.Background(), []byte(msg))

	ev := assertErrorEvent(t, conn)
	var payload events.ErrorPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	if payload.Reason != "room not found" {
		t.Fatalf("expected reason 'room not found', got %q", payload.Reason)
	}
}

func TestMalformedMessageSendsError(t *testing.T) {
	handler := &fakeGameHandler{}
	conn := newTestConnection(handler)

	conn.handleClientMessage(context.Background(), []byte(`{not json`))

	if len(handler.calls) != 0 {
		t.Fatalf("expected no handler calls, got %d", len(handler.calls))
	}
	assertErrorEvent(t, conn)
}

func assertErrorEvent(t *testing.T, conn *Connection) events.Event {
	t.Helper()
	select {
	case data := <-conn.send:
		var ev events.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != events.EventTypeError {
			t.Fatalf("expected error event, got %s", ev.Type)
		}
		return ev
	default:
		t.Fatal("expected an error event on the send channel")
		return events.Event{}
	}
}

func TestSendAfterDisconnectIsDropped(t *testing.T) {
	handler := &fakeGameHandler{}
	cm := NewConnectionManager(handler, DefaultConnectionConfig())
	conn := &Connection{id: "conn-test", send: make(chan []byte, 8), manager: cm}
	cm.conns[conn.id] = conn

	cm.unregister(conn)

	// The disconnect has not yet propagated to every session, so a live
	// round can still broadcast to this subscriber. The event must be
	// dropped, not sent on the closed channel.
	conn.Send(events.New("ABC123", events.EventTypeScoreUpdate, events.ScoreUpdatePayload{}))
	conn.Send(events.New("ABC123", events.EventTypeNextQuestion, events.CurrentQuestion{}))

	if got := cm.ConnectionCount(); got != 0 {
		t.Fatalf("expected 0 live connections, got %d", got)
	}
}

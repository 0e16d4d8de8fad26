package game

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/quizclash/quizclash/go/internal/game/events"
	"github.com/quizclash/quizclash/go/internal/game/session"
	"github.com/quizclash/quizclash/go/internal/models"
)

var errRoomMissing = errors.New("room not found")
var errUserMissing = errors.New("user not found")

type fakeRoomLookup struct {
	rooms map[uuid.UUID]*models.Room
}

func (f *fakeRoomLookup) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, errRoomMissing
	}
	return room, nil
}

type fakeUserLookup struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserLookup) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errUserMissing
	}
	return user, nil
}

type nullQuestions struct{}

func (nullQuestions) SampleQuestions(ctx context.Context, categories []string, difficulty models.Difficulty, count int) ([]models.Question, error) {
	return nil, errors.New("no questions")
}

type nullPersistence struct{}

func (nullPersistence) RecordScore(ctx context.Context, userID, roomID uuid.UUID, score int) error {
	return nil
}

func (nullPersistence) UpsertStats(ctx context.Context, userID uuid.UUID, score int, won bool) error {
	return nil
}

type nullRoomStore struct{}

func (nullRoomStore) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error {
	return nil
}

type recordingSub struct {
	id string

	mu     sync.Mutex
	events []events.Event
}

func (r *recordingSub) ID() string { return r.id }

func (r *recordingSub) Send(ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func newTestApp(room *models.Room, user *models.User) *App {
	registry := session.NewRegistry(session.DefaultConfig(), clockwork.NewFakeClock(), session.Deps{
		Questions:   nullQuestions{},
		Persistence: nullPersistence{},
		Rooms:       nullRoomStore{},
	}, nil)

	return NewApp(
		&fakeRoomLookup{rooms: map[uuid.UUID]*models.Room{room.ID: room}},
		&fakeUserLookup{users: map[uuid.UUID]*models.User{user.ID: user}},
		registry,
	)
}

func TestJoinRoomMaterializesSession(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomCode: "ABC123", Status: models.RoomStatusWaiting}
	user := &models.User{ID: uuid.New(), Username: "alice"}
	app := newTestApp(room, user)

	sub := &recordingSub{id: "conn-1"}
	if err := app.JoinRoom(context.Background(), sub, room.ID, user.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if _, ok := app.Registry().Get(room.RoomCode); !ok {
		t.Fatal("expected session materialized on first join")
	}

	// A second joiner lands in the same session, not a new one.
	sub2 := &recordingSub{id: "conn-2"}
	if err := app.JoinRoom(context.Background(), sub2, room.ID, user.ID); err != nil {
		t.Fatalf("second join: %v", err)
	}
}

func TestJoinRoomUnknownRoom(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomCode: "ABC123"}
	user := &models.User{ID: uuid.New(), Username: "alice"}
	app := newTestApp(room, user)

	err := app.JoinRoom(context.Background(), &recordingSub{id: "c"}, uuid.New(), user.ID)
	if !errors.Is(err, errRoomMissing) {
		t.Fatalf("expected room lookup error, got %v", err)
	}
}

func TestJoinRoomUnknownUser(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomCode: "ABC123"}
	user := &models.User{ID: uuid.New(), Username: "alice"}
	app := newTestApp(room, user)

	err := app.JoinRoom(context.Background(), &recordingSub{id: "c"}, room.ID, uuid.New())
	if !errors.Is(err, errUserMissing) {
		t.Fatalf("expected user lookup error, got %v", err)
	}
	if _, ok := app.Registry().Get(room.RoomCode); ok {
		t.Fatal("expected no session for failed join")
	}
}

func TestStartGameRequiresInitializedRoom(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomCode: "ABC123"}
	user := &models.User{ID: uuid.New(), Username: "alice"}
	app := newTestApp(room, user)

	err := app.StartGame(context.Background(), room.ID, []string{"general"}, models.DifficultyEasy)
	if !errors.Is(err, ErrRoomNotInitialized) {
		t.Fatalf("expected ErrRoomNotInitialized, got %v", err)
	}
}

func TestSubmitAnswerUnknownRoomCode(t *testing.T) {
	room := &models.Room{ID: uuid.New(), RoomCode: "ABC123"}
	user := &models.User{ID: uuid.New(), Username: "alice"}
	app := newTestApp(room, user)

	err := app.SubmitAnswer(context.Background(), "NOPE99", user.ID, "a")
	if !errors.Is(err, ErrRoomNotInitialized) {
		t.Fatalf("expected ErrRoomNotInitialized, got %v", err)
	}
}

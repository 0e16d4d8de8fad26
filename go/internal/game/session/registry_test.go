package session

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/quizclash/quizclash/go/internal/models"
)

func TestRegistryCreateRejectsDuplicateCode(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.registry.Create(env.room); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.registry.Create(env.room); !errors.Is(err, ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}
}

func TestRegistryGetOrCreateReturnsExisting(t *testing.T) {
	env := newTestEnv(t)

	first := env.registry.GetOrCreate(env.room)
	second := env.registry.GetOrCreate(env.room)
	if first != second {
		t.Fatal("expected the same live session for one room code")
	}
}

func TestRegistryGetAbsent(t *testing.T) {
	env := newTestEnv(t)

	if _, ok := env.registry.Get("NOPE99"); ok {
		t.Fatal("expected no session for unknown code")
	}
}

func TestRegistryDestroyRemovesSession(t *testing.T) {
	env := newTestEnv(t)

	s, _ := env.registry.Create(env.room)
	env.registry.Destroy(env.room.RoomCode)

	if _, ok := env.registry.Get(env.room.RoomCode); ok {
		t.Fatal("expected session removed after destroy")
	}
	waitFor(t, func() bool {
		return s.Status() == StatusFinished
	})
}

func TestRegistryDropConnectionSpansSessions(t *testing.T) {
	env := newTestEnv(t)

	roomA := env.room
	roomB := &models.Room{ID: uuid.New(), RoomCode: "XYZ789", Status: models.RoomStatusWaiting}

	sessA, _ := env.registry.Create(roomA)
	sessB, _ := env.registry.Create(roomB)

	// The same connection sits in both rooms; its user holds a seat in
	// each roster.
	user := newUser("alice")
	watcherA := newFakeSubscriber("watcher-a")
	watcherB := newFakeSubscriber("watcher-b")
	mustJoin(t, sessA, watcherA, newUser("w-a"))
	mustJoin(t, sessB, watcherB, newUser("w-b"))

	shared := newFakeSubscriber("conn-shared")
	mustJoin(t, sessA, shared, user)
	mustJoin(t, sessB, shared, user)

	env.registry.DropConnection("conn-shared")

	for _, watcher := range []*fakeSubscriber{watcherA, watcherB} {
		waitFor(t, func() bool {
			ev, ok := watcher.lastOfType("playerJoined")
			return ok && len(rosterOf(t, ev)) == 1
		})
	}
}

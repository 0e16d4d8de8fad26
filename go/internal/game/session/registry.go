package session

import (
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/quizclash/quizclash/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Registry is the process-wide table of live sessions, keyed by room
// code. It is the sole owner of session creation and teardown; restart
// loses in-flight sessions by design.
type Registry struct {
	cfg   Config
	clock clockwork.Clock
	deps  Deps
	sink  EventSink

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates a session registry. sink may be nil.
func NewRegistry(cfg Config, clock clockwork.Clock, deps Deps, sink EventSink) *Registry {
	return &Registry{
		cfg:      cfg,
		clock:    clock,
		deps:     deps,
		sink:     sink,
		sessions: make(map[string]*Session),
	}
}

// Create materializes a live session for a pre-allocated room. Returns
// ErrSessionExists when the code already has one.
func (r *Registry) Create(room *models.Room) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[room.RoomCode]; ok {
		return nil, ErrSessionExists
	}

	s := newSession(r, room)
	r.sessions[room.RoomCode] = s

	log.Info().
		Str("room_code", room.RoomCode).
		Str("room_id", room.ID.String()).
		Msg("session created")
	return s, nil
}

// Get returns the live session for a room code, if any.
func (r *Registry) Get(roomCode string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[roomCode]
	return s, ok
}

// GetOrCreate returns the live session for a room, lazily materializing
// it on first join. Rooms are pre-allocated by the room service, so an
// existing session means "already initialized", not a conflict.
func (r *Registry) GetOrCreate(room *models.Room) *Session {
	s, err := r.Create(room)
	if err == nil {
		return s
	}
	existing, _ := r.Get(room.RoomCode)
	return existing
}

// Destroy removes and shuts down the session for a room code.
func (r *Registry) Destroy(roomCode string) {
	r.mu.Lock()
	s, ok := r.sessions[roomCode]
	delete(r.sessions, roomCode)
	r.mu.Unlock()

	if ok {
		s.async(func() {
			if s.status != StatusFinished {
				s.status = StatusFinished
				s.stopTimer()
				close(s.done)
			}
		})
	}
}

// remove drops a finished session from the table. Called by the session
// itself at the end of the game-end handoff.
func (r *Registry) remove(roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, roomCode)

	log.Info().Str("room_code", roomCode).Msg("session removed")
}

// DropConnection reconciles a transport-level disconnect against every
// live session. Sessions holding the departed connection remove it and
// rebroadcast their roster.
func (r *Registry) DropConnection(connID string) {
	r.mu.Lock()
	snapshot := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		snapshot = append(snapshot, s)
	}
	r.mu.Unlock()

	for _, s := range snapshot {
		s.RemoveConnection(connID)
	}
}

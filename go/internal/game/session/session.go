package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/quizclash/quizclash/go/internal/game/events"
	"github.com/quizclash/quizclash/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Session is the live state machine for one room. All state below the
// command channel is owned by the run goroutine: inbound operations are
// applied one at a time, in arrival order, which is what makes the
// answer/timer/disconnect races resolvable without per-field locking.
type Session struct {
	roomID   uuid.UUID
	roomCode string
	cfg      Config
	clock    clockwork.Clock
	deps     Deps
	sink     EventSink
	registry *Registry

	cmdCh chan func()
	done  chan struct{}

	// Owned by the run goroutine.
	status    Status
	players   []*Player
	questions []models.Question
	current   int
	chat      []models.ChatMessage
	subs      map[string]Subscriber
	timer     clockwork.Timer
	round     int
	advanced  bool
}

func newSession(registry *Registry, room *models.Room) *Session {
	s := &Session{
		roomID:   room.ID,
		roomCode: room.RoomCode,
		cfg:      registry.cfg,
		clock:    registry.clock,
		deps:     registry.deps,
		sink:     registry.sink,
		registry: registry,
		cmdCh:    make(chan func(), 16),
		done:     make(chan struct{}),
		status:   StatusWaiting,
		subs:     make(map[string]Subscriber),
	}
	go s.run()
	return s
}

// RoomCode returns the session's room code.
func (s *Session) RoomCode() string { return s.roomCode }

// RoomID returns the durable room id the session was materialized from.
func (s *Session) RoomID() uuid.UUID { return s.roomID }

// Status reports the session's lifecycle state. Torn-down sessions
// report Finished.
func (s *Session) Status() Status {
	st := StatusFinished
	_ = s.do(context.Background(), func() error {
		st = s.status
		return nil
	})
	return st
}

func (s *Session) run() {
	for {
		select {
		case fn := <-s.cmdCh:
			fn()
		case <-s.done:
			s.drain()
			return
		}
	}
}

// drain runs commands that raced into the queue during teardown. Every
// operation rejects the finished state, so these resolve to "room not
// found" style errors instead of mutating a torn-down session.
func (s *Session) drain() {
	for {
		select {
		case fn := <-s.cmdCh:
			fn()
		default:
			return
		}
	}
}

// do runs fn on the session goroutine and waits for its result. Events
// arriving after teardown fail with ErrSessionClosed instead of being
// applied to a half-destroyed session.
func (s *Session) do(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	select {
	case s.cmdCh <- func() { errCh <- fn() }:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// An enqueued command always runs: either on the loop, or in the
	// teardown drain. Waiting on done here instead would misreport a
	// command that itself finished the game, since finish closes done
	// before the command's result lands on errCh.
	return <-errCh
}

// async queues fn without waiting for it. Used by timer callbacks and
// disconnect fan-out, which have no caller to report back to.
func (s *Session) async(fn func()) {
	select {
	case s.cmdCh <- fn:
	case <-s.done:
	}
}

// Join adds a player to the roster, or refreshes their connection
// identity if the durable identity is already seated. The updated roster
// goes to the whole room; the chat log replays to the joiner only.
func (s *Session) Join(ctx context.Context, sub Subscriber, user *models.User) error {
	return s.do(ctx, func() error {
		if s.status == StatusFinished {
			return ErrSessionClosed
		}

		s.subs[sub.ID()] = sub

		if p := s.findPlayer(user.ID); p != nil {
			p.ConnID = sub.ID()
		} else {
			s.players = append(s.players, &Player{
				UserID:   user.ID,
				ConnID:   sub.ID(),
				Username: user.Username,
				Avatar:   user.Avatar,
			})
		}

		log.Info().
			Str("room_code", s.roomCode).
			Str("user_id", user.ID.String()).
			Int("roster_size", len(s.players)).
			Msg("player joined room")

		s.broadcast(events.New(s.roomCode, events.EventTypePlayerJoined, events.PlayerJoinedPayload{
			Players: s.roster(),
		}))
		sub.Send(events.New(s.roomCode, events.EventTypeChatHistory, events.ChatHistoryPayload{
			Messages: s.chat,
		}))
		return nil
	})
}

// SendMessage appends to the session chat log and broadcasts the message.
func (s *Session) SendMessage(ctx context.Context, userID uuid.UUID, text string) error {
	return s.do(ctx, func() error {
		if s.status == StatusFinished {
			return ErrSessionClosed
		}
		p := s.findPlayer(userID)
		if p == nil {
			return ErrPlayerNotFound
		}

		msg := models.ChatMessage{
			Username:  p.Username,
			Avatar:    p.Avatar,
			Message:   text,
			Timestamp: s.clock.Now(),
		}
		s.chat = append(s.chat, msg)

		s.broadcast(events.New(s.roomCode, events.EventTypeNewMessage, events.NewMessagePayload{
			ChatMessage: msg,
		}))
		return nil
	})
}

// RemoveConnection drops any roster entry whose connection identity
// matches. Remaining members get the updated roster; if the departed
// player was the last unanswered one, the round completes.
func (s *Session) RemoveConnection(connID string) {
	s.async(func() {
		if s.status == StatusFinished {
			return
		}
		delete(s.subs, connID)

		removed := false
		kept := s.players[:0]
		for _, p := range s.players {
			if p.ConnID == connID {
				removed = true
				continue
			}
			kept = append(kept, p)
		}
		s.players = kept
		if !removed {
			return
		}

		log.Info().
			Str("room_code", s.roomCode).
			Str("conn_id", connID).
			Int("roster_size", len(s.players)).
			Msg("player disconnected from room")

		s.broadcast(events.New(s.roomCode, events.EventTypePlayerJoined, events.PlayerJoinedPayload{
			Players: s.roster(),
		}))

		// Departed players leave the all-answered quorum entirely.
		if s.status == StatusActive && !s.advanced && len(s.players) > 0 && s.allAnswered() {
			s.completeRound(s.round)
		}
	})
}

func (s *Session) findPlayer(userID uuid.UUID) *Player {
	for _, p := range s.players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

func (s *Session) findSubscriber(connID string) Subscriber {
	return s.subs[connID]
}

func (s *Session) roster() []events.RosterEntry {
	roster := make([]events.RosterEntry, 0, len(s.players))
	for _, p := range s.players {
		roster = append(roster, events.RosterEntry{
			UserID:   p.UserID.String(),
			Username: p.Username,
			Avatar:   p.Avatar,
			Score:    p.Score,
		})
	}
	return roster
}

// broadcast fans an event out to every subscriber and mirrors it to the
// event sink when one is configured.
func (s *Session) broadcast(ev events.Event) {
	for _, sub := range s.subs {
		sub.Send(ev)
	}
	if s.sink != nil {
		s.sink.Publish(s.roomCode, ev)
	}
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) roundDurationSeconds() int {
	return int(s.cfg.RoundDuration / time.Second)
}

package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/quizclash/quizclash/go/internal/game/events"
	"github.com/quizclash/quizclash/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Start loads the question sequence and begins round 0. Valid only from
// Waiting; a short or empty sample is a validation failure and leaves
// the session (and the durable room row) untouched.
func (s *Session) Start(ctx context.Context, categories []string, difficulty models.Difficulty) error {
	return s.do(ctx, func() error {
		if s.status != StatusWaiting {
			return ErrGameAlreadyStarted
		}

		questions, err := s.deps.Questions.SampleQuestions(ctx, categories, difficulty, s.cfg.QuestionsPerGame)
		if err != nil {
			return err
		}

		if err := s.deps.Rooms.UpdateRoomStatus(ctx, s.roomID, models.RoomStatusActive); err != nil {
			return err
		}

		s.status = StatusActive
		s.questions = questions
		s.current = 0

		log.Info().
			Str("room_code", s.roomCode).
			Int("questions", len(questions)).
			Strs("categories", categories).
			Str("difficulty", string(difficulty)).
			Msg("game started")

		s.broadcast(events.New(s.roomCode, events.EventTypeGameStarted, events.GameStartedPayload{
			Questions: s.questions,
			Current:   s.currentQuestion(),
		}))
		s.enterRound()
		return nil
	})
}

// SubmitAnswer fills the player's answer slot for the current round. The
// first submission wins the slot; later ones are no-ops. Submissions
// outside an open round are ignored.
func (s *Session) SubmitAnswer(ctx context.Context, userID uuid.UUID, answer string) error {
	return s.do(ctx, func() error {
		if s.status != StatusActive || s.advanced || s.current >= len(s.questions) {
			return nil
		}

		p := s.findPlayer(userID)
		if p == nil {
			return ErrPlayerNotFound
		}
		if p.answer != nil {
			return nil
		}

		ans := answer
		p.answer = &ans

		question := s.questions[s.current]
		isCorrect := answer == question.CorrectAnswer
		if isCorrect {
			p.Score += Points(question.Difficulty)
		}

		log.Debug().
			Str("room_code", s.roomCode).
			Str("user_id", userID.String()).
			Bool("correct", isCorrect).
			Msg("answer submitted")

		if sub := s.findSubscriber(p.ConnID); sub != nil {
			sub.Send(events.New(s.roomCode, events.EventTypeAnswerFeedback, events.AnswerFeedbackPayload{
				IsCorrect:     isCorrect,
				CorrectAnswer: question.CorrectAnswer,
			}))
		}
		s.broadcast(events.New(s.roomCode, events.EventTypeScoreUpdate, events.ScoreUpdatePayload{
			Players: s.roster(),
		}))

		if s.allAnswered() {
			s.completeRound(s.round)
		}
		return nil
	})
}

// enterRound resets every answer slot, announces the question, and arms
// the round timer. Each entry bumps the round epoch so a stale timer
// callback can never advance a later round.
func (s *Session) enterRound() {
	s.round++
	s.advanced = false
	for _, p := range s.players {
		p.answer = nil
	}

	round := s.round
	s.timer = s.clock.AfterFunc(s.cfg.RoundDuration, func() {
		s.async(func() {
			s.completeRound(round)
		})
	})

	s.broadcast(events.New(s.roomCode, events.EventTypeNextQuestion, s.currentQuestion()))
}

func (s *Session) currentQuestion() events.CurrentQuestion {
	return events.CurrentQuestion{
		Question:       s.questions[s.current],
		QuestionNumber: s.current + 1,
		TotalQuestions: len(s.questions),
		TimeLeft:       s.roundDurationSeconds(),
	}
}

func (s *Session) allAnswered() bool {
	for _, p := range s.players {
		if p.answer == nil {
			return false
		}
	}
	return true
}

// completeRound advances past the current round. It runs at most once
// per round epoch regardless of which trigger (all answered, timer
// expiry, final disconnect) fires first.
func (s *Session) completeRound(round int) {
	if s.status != StatusActive || round != s.round || s.advanced {
		return
	}
	s.advanced = true
	s.stopTimer()

	s.current++
	if s.current < len(s.questions) {
		s.enterRound()
		return
	}
	s.finish()
}

// finish runs the end-of-game handoff: final scoreboard broadcast, one
// score record and one stats upsert per player, room status flip, then
// registry teardown. Persistence failures are logged and skipped — they
// never roll back earlier writes or keep the session alive.
func (s *Session) finish() {
	s.status = StatusFinished
	s.stopTimer()

	scores := s.roster()
	s.broadcast(events.New(s.roomCode, events.EventTypeGameEnded, events.GameEndedPayload{
		Scores: scores,
	}))

	winningScore := 0
	for _, p := range s.players {
		if p.Score > winningScore {
			winningScore = p.Score
		}
	}

	ctx := context.Background()
	for _, p := range s.players {
		won := winningScore > 0 && p.Score == winningScore

		if err := s.deps.Persistence.RecordScore(ctx, p.UserID, s.roomID, p.Score); err != nil {
			log.Error().
				Err(err).
				Str("room_code", s.roomCode).
				Str("user_id", p.UserID.String()).
				Msg("failed to record player score")
		}
		if err := s.deps.Persistence.UpsertStats(ctx, p.UserID, p.Score, won); err != nil {
			log.Error().
				Err(err).
				Str("room_code", s.roomCode).
				Str("user_id", p.UserID.String()).
				Msg("failed to upsert player stats")
		}
	}

	if err := s.deps.Rooms.UpdateRoomStatus(ctx, s.roomID, models.RoomStatusFinished); err != nil {
		log.Error().
			Err(err).
			Str("room_code", s.roomCode).
			Msg("failed to mark room finished")
	}

	log.Info().
		Str("room_code", s.roomCode).
		Int("players", len(s.players)).
		Int("winning_score", winningScore).
		Msg("game ended")

	s.registry.remove(s.roomCode)
	close(s.done)
}

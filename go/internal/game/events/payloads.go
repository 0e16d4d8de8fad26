package events

import (
	"github.com/quizclash/quizclash/go/internal/models"
)

// RosterEntry is one player's public roster view.
type RosterEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Score    int    `json:"score"`
}

// PlayerJoinedPayload carries the full roster after any membership change.
type PlayerJoinedPayload struct {
	Players []RosterEntry `json:"players"`
}

// ChatHistoryPayload is the one-time chat log replay sent to a joiner.
type ChatHistoryPayload struct {
	Messages []models.ChatMessage `json:"messages"`
}

// CurrentQuestion describes the question open in the current round.
type CurrentQuestion struct {
	Question       models.Question `json:"question"`
	QuestionNumber int             `json:"questionNumber"`
	TotalQuestions int             `json:"totalQuestions"`
	TimeLeft       int             `json:"timeLeft"`
}

// GameStartedPayload is broadcast once when a game begins.
type GameStartedPayload struct {
	Questions []models.Question `json:"questions"`
	Current   CurrentQuestion   `json:"current"`
}

// AnswerFeedbackPayload is sent privately to a submitter.
type AnswerFeedbackPayload struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
}

// ScoreUpdatePayload carries the roster with up-to-date scores.
type ScoreUpdatePayload struct {
	Players []RosterEntry `json:"players"`
}

// NewMessagePayload carries a single chat message.
type NewMessagePayload struct {
	models.ChatMessage
}

// GameEndedPayload carries the final scoreboard.
type GameEndedPayload struct {
	Scores []RosterEntry `json:"scores"`
}

// ErrorPayload carries an error reason to a single connection.
type ErrorPayload struct {
	Reason string `json:"reason"`
}

package models

import (
	"github.com/google/uuid"
)

// Difficulty defines the difficulty tier of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DifficultyMixed is only valid as a sampling filter, never stored
	// on a question row.
	DifficultyMixed Difficulty = "mixed"
)

// Question represents a single trivia question. Immutable once sampled
// for a session.
type Question struct {
	ID            uuid.UUID  `json:"id"`
	Prompt        string     `json:"prompt"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correct_answer"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      string     `json:"category"`
}

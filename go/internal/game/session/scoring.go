package session

import "github.com/quizclash/quizclash/go/internal/models"

// Points returns the score value of a correct answer by difficulty.
// Unknown tiers score as hard.
func Points(d models.Difficulty) int {
	switch d {
	case models.DifficultyEasy:
		return 5
	case models.DifficultyMedium:
		return 10
	default:
		return 15
	}
}

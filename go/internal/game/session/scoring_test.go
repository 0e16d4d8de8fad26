package session

import (
	"testing"

	"github.com/quizclash/quizclash/go/internal/models"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		want       int
	}{
		{models.DifficultyEasy, 5},
		{models.DifficultyMedium, 10},
		{models.DifficultyHard, 15},
		{models.Difficulty("unknown"), 15},
	}

	for _, tt := range tests {
		if got := Points(tt.difficulty); got != tt.want {
			t.Errorf("Points(%q) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

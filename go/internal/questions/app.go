package questions

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizclash/quizclash/go/internal/models"
)

// ErrNotEnoughQuestions is returned when the bank cannot satisfy the
// requested sample size for the given filters.
var ErrNotEnoughQuestions = errors.New("not enough questions for selected categories and difficulty")

// QuestionsRepository defines what the app layer needs from the repository.
type QuestionsRepository interface {
	SampleQuestions(ctx context.Context, categories []string, difficulty models.Difficulty, count int) ([]models.Question, error)
	ListQuestions(ctx context.Context) ([]models.Question, error)
}

// App handles question bank business logic.
type App struct {
	repo QuestionsRepository
}

// NewApp creates a new questions App.
func NewApp(repo QuestionsRepository) *App {
	return &App{repo: repo}
}

// SampleQuestions draws a random question set for a game. A short draw
// is a validation failure, not a partial result.
func (a *App) SampleQuestions(ctx context.Context, categories []string, difficulty models.Difficulty, count int) ([]models.Question, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories selected", ErrNotEnoughQuestions)
	}

	qs, err := a.repo.SampleQuestions(ctx, categories, difficulty, count)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}
	if len(qs) < count {
		return nil, ErrNotEnoughQuestions
	}
	return qs, nil
}

// ListQuestions returns the full question bank.
func (a *App) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return a.repo.ListQuestions(ctx)
}

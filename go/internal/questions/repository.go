package questions

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/quizclash/quizclash/go/internal/models"
)

// DB defines what the repository needs from the database layer.
// *pgxpool.Pool satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository implements question data access over Postgres.
type Repository struct {
	db DB
}

// NewRepository creates a new questions repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// SampleQuestions returns up to count random questions matching the
// category set and, unless difficulty is mixed, the difficulty tier.
func (r *Repository) SampleQuestions(ctx context.Context, categories []string, difficulty models.Difficulty, count int) ([]models.Question, error) {
	query := `SELECT id, prompt, options, correct_answer, difficulty, category
		FROM questions
		WHERE category = ANY($1)`
	args := []any{categories}

	if difficulty != models.DifficultyMixed {
		query += ` AND difficulty = $2`
		args = append(args, difficulty)
	}
	query += fmt.Sprintf(` ORDER BY random() LIMIT %d`, count)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListQuestions returns every question in the bank.
func (r *Repository) ListQuestions(ctx context.Context) ([]models.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, prompt, options, correct_answer, difficulty, category FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

func scanQuestions(rows pgx.Rows) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Options, &q.CorrectAnswer, &q.Difficulty, &q.Category); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	return questions, nil
}

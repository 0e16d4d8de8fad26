package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/quizclash/quizclash/go/internal/models"
)

// UsersRepository defines what the app layer needs from the repository.
type UsersRepository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// App handles user profile lookups.
type App struct {
	repo UsersRepository
}

// NewApp creates a new users App.
func NewApp(repo UsersRepository) *App {
	return &App{repo: repo}
}

// GetUser retrieves a user profile by ID.
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

package questions

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Service exposes the question bank REST endpoints.
type Service struct {
	app *App
}

// NewService creates a new questions HTTP service.
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the question endpoints on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/questions", s.handleList)
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	qs, err := s.app.ListQuestions(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list questions")
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(qs); err != nil {
		log.Error().Err(err).Msg("failed to encode questions")
	}
}

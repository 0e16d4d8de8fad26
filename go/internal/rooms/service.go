package rooms

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Service exposes the room REST endpoints.
type Service struct {
	app *App
}

// NewService creates a new rooms HTTP service.
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the room endpoints on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Post("/rooms/create", s.handleCreate)
	r.Post("/rooms/join", s.handleJoin)
}

type createRoomResponse struct {
	RoomID   string `json:"roomId"`
	RoomCode string `json:"roomCode"`
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	room, err := s.app.CreateRoom(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")
		http.Error(w, "error creating room", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, createRoomResponse{
		RoomID:   room.ID.String(),
		RoomCode: room.RoomCode,
	})
}

type joinRoomRequest struct {
	RoomCode string `json:"roomCode"`
}

func (s *Service) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	room, err := s.app.JoinRoom(r.Context(), req.RoomCode)
	switch {
	case errors.Is(err, ErrRoomNotFound):
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrRoomNotJoinable):
		http.Error(w, "Room is not accepting players", http.StatusBadRequest)
		return
	case err != nil:
		log.Error().Err(err).Str("room_code", req.RoomCode).Msg("failed to join room")
		http.Error(w, "error joining room", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, createRoomResponse{
		RoomID:   room.ID.String(),
		RoomCode: room.RoomCode,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

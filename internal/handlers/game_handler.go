package handlers

import (
	"net/http"

	"playtracker/internal/models"
	"playtracker/internal/service"
)

// GameHandler handles game requests
type GameHandler struct {
	games *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListGames(r.Context())
	if err != nil {
		respondWithServiceError(w, "Failed to list games", err)
		return
	}
	respondWithJSON(w, http.StatusOK, games)
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var in models.GameInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	game, err := h.games.CreateGame(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, "Failed to create game", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, game)
}

func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	if err := h.games.DeleteGame(r.Context(), id); err != nil {
		respondWithServiceError(w, "Failed to delete game", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Game deleted"})
}

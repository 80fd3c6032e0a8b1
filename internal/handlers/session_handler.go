package handlers

import (
	"net/http"

	"playtracker/internal/models"
	"playtracker/internal/service"
)

// SessionHandler handles play session requests
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type extendResponse struct {
	Message     string         `json:"message"`
	Session     models.Session `json:"session"`
	NewDuration float64        `json:"newDuration"`
}

func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var in models.StartSessionInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	session, err := h.sessions.StartSession(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, "Failed to start session", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, session)
}

func (h *SessionHandler) ExtendSession(w http.ResponseWriter, r *http.Request) {
	var in models.ExtendSessionInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	session, err := h.sessions.ExtendSession(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, "Failed to extend session", err)
		return
	}
	respondWithJSON(w, http.StatusOK, extendResponse{
		Message:     "Session extended",
		Session:     *session,
		NewDuration: session.Duration,
	})
}

// EndSession ends the session named in the request body
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	var in models.EndSessionInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithServiceError(w, "", err)
		return
	}
	h.endSession(w, r, in.SessionID)
}

// EndSessionByPath ends the session named in the path
func (h *SessionHandler) EndSessionByPath(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}
	h.endSession(w, r, id)
}

func (h *SessionHandler) endSession(w http.ResponseWriter, r *http.Request, id int64) {
	session, err := h.sessions.EndSession(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, "Failed to end session", err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	session, err := h.sessions.GetSession(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, "Failed to get session", err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	if err := h.sessions.DeleteSession(r.Context(), id); err != nil {
		respondWithServiceError(w, "Failed to delete session", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Session deleted"})
}

func (h *SessionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	active, err := h.sessions.ListActive(r.Context())
	if err != nil {
		respondWithServiceError(w, "Failed to list active sessions", err)
		return
	}
	respondWithJSON(w, http.StatusOK, active)
}

func (h *SessionHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.sessions.ListHistory(r.Context())
	if err != nil {
		respondWithServiceError(w, "Failed to list session history", err)
		return
	}
	respondWithJSON(w, http.StatusOK, history)
}

package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"playtracker/internal/service"
	"playtracker/internal/validation"
)

type errorResponse struct {
	Error       string `json:"error"`
	IsDuplicate bool   `json:"isDuplicate,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps service and validation errors onto status
// codes. Anything unrecognised is logged and reported as a 500.
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error) {
	var ve validation.ValidationError
	var dup *service.DuplicateError

	switch {
	case errors.As(err, &ve):
		respondWithError(w, http.StatusBadRequest, ve.Message, "", nil)
	case errors.As(err, &dup):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: dup.Message, IsDuplicate: true})
	case errors.Is(err, service.ErrChildNotFound):
		respondWithError(w, http.StatusNotFound, service.ErrChildNotFound.Error(), "", nil)
	case errors.Is(err, service.ErrGameNotFound):
		respondWithError(w, http.StatusNotFound, service.ErrGameNotFound.Error(), "", nil)
	case errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, http.StatusNotFound, service.ErrSessionNotFound.Error(), "", nil)
	case errors.Is(err, service.ErrActiveSession):
		respondWithError(w, http.StatusBadRequest, service.ErrActiveSession.Error(), "", nil)
	case errors.Is(err, service.ErrResourceBusy):
		respondWithError(w, http.StatusConflict, ErrResourceBusy, "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

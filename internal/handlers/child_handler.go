package handlers

import (
	"net/http"

	"playtracker/internal/models"
	"playtracker/internal/service"
)

// ChildHandler handles child profile requests
type ChildHandler struct {
	children *service.ChildService
}

// NewChildHandler creates a new child handler
func NewChildHandler(children *service.ChildService) *ChildHandler {
	return &ChildHandler{children: children}
}

// childResponse adds the non-blocking duplicate suggestion to a child
type childResponse struct {
	models.Child
	Suggestion string `json:"suggestion,omitempty"`
}

// ListChildren returns every child with statistics
func (h *ChildHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.children.ListChildren(r.Context())
	if err != nil {
		respondWithServiceError(w, "Failed to list children", err)
		return
	}
	respondWithJSON(w, http.StatusOK, children)
}

// GetChild returns one child
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	child, err := h.children.GetChild(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, "Failed to get child", err)
		return
	}
	respondWithJSON(w, http.StatusOK, child)
}

// CreateChild creates a child
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var in models.ChildInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	child, suggestion, err := h.children.CreateChild(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, "Failed to create child", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, childResponse{Child: *child, Suggestion: suggestion})
}

// UpdateChild edits a child
func (h *ChildHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	var in models.ChildInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	child, suggestion, err := h.children.UpdateChild(r.Context(), id, in)
	if err != nil {
		respondWithServiceError(w, "Failed to update child", err)
		return
	}
	respondWithJSON(w, http.StatusOK, childResponse{Child: *child, Suggestion: suggestion})
}

// DeleteChild deletes a child
func (h *ChildHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return
	}

	if err := h.children.DeleteChild(r.Context(), id); err != nil {
		respondWithServiceError(w, "Failed to delete child", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Child deleted"})
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RubricHandler exposes the active rubric definition.
type RubricHandler struct {
	deps Dependencies
}

// NewRubricHandler creates a new rubric handler.
func NewRubricHandler(deps Dependencies) *RubricHandler {
	return &RubricHandler{deps: deps}
}

// HandleGetRubric handles GET /rubric requests.
func (h *RubricHandler) HandleGetRubric(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Rubric())
}

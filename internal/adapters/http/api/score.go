// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/elocute/elocute/internal/domain/rubric"
)

// ScoreHandler handles transcript scoring requests.
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandlePostScore handles POST /score requests. An empty transcript is
// accepted and yields the all-zero report; only malformed submissions are
// rejected.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTranscriptBytes+4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	report, err := h.deps.Score(r.Context(), req.Transcript, req.DurationSeconds)
	if err != nil {
		if errors.Is(err, rubric.ErrInvalidRubric) {
			writeError(w, http.StatusInternalServerError, "invalid_rubric", WrapKind(op, ErrScoring, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrScoring, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/elocute/elocute/internal/domain/model"
	"github.com/elocute/elocute/internal/domain/rubric"
)

// maxTranscriptBytes bounds a single submission. Spoken self-introductions
// run a few hundred words; anything past this is a client mistake.
const maxTranscriptBytes = 64 * 1024

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Score evaluates one transcript and returns the full report.
	Score(ctx context.Context, text string, durationSeconds float64) (model.ScoreReport, error)

	// Rubric exposes the active rubric definition.
	Rubric() rubric.Definition
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	scoreHandler  *ScoreHandler
	rubricHandler *RubricHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		scoreHandler:  NewScoreHandler(deps),
		rubricHandler: NewRubricHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/rubric", MetricsMiddleware(s.rubricHandler.HandleGetRubric, "rubric"))
}

// scoreRequest mirrors the OpenAPI schema for POST /score.
type scoreRequest struct {
	Transcript      string  `json:"transcript"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (s scoreRequest) validate() error {
	// An empty transcript is a valid input; it scores to the zero report.
	// Only structurally broken submissions are rejected.
	if len(s.Transcript) > maxTranscriptBytes {
		return errors.New("transcript exceeds maximum size")
	}
	if !utf8.ValidString(s.Transcript) {
		return errors.New("transcript must be valid UTF-8")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

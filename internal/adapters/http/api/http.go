// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoring"
)

// maxBodyBytes bounds request bodies; batch requests carry whole rosters.
const maxBodyBytes = 8 << 20

// Dependencies required by HTTP handlers.
type Dependencies interface {
	ComputeFitScore(ctx context.Context, cand *model.Candidate, team *model.Team, mode model.PreferenceMode) (model.FitScoreResult, error)
	Simulate(ctx context.Context, team *model.Team, cand *model.Candidate) (model.SimulationResult, error)
	AssignBatch(ctx context.Context, req model.BatchRequest) (model.BatchAssignmentResult, error)
	Modes() []scoring.ModeConfig
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	fitScoreHandler *FitScoreHandler
	simulateHandler *SimulateHandler
	batchHandler    *BatchHandler
	modesHandler    *ModesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		fitScoreHandler: NewFitScoreHandler(deps),
		simulateHandler: NewSimulateHandler(deps),
		batchHandler:    NewBatchHandler(deps),
		modesHandler:    NewModesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/fit-score", MetricsMiddleware(s.fitScoreHandler.HandlePostFitScore, "fit_score"))
	mux.HandleFunc("/v1/simulate", MetricsMiddleware(s.simulateHandler.HandlePostSimulate, "simulate"))
	mux.HandleFunc("/v1/batch-assignments", MetricsMiddleware(s.batchHandler.HandlePostBatch, "batch_assignments"))
	mux.HandleFunc("/v1/modes", MetricsMiddleware(s.modesHandler.HandleGetModes, "modes"))
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

// decodeJSON reads a JSON body into v. Failures are ErrBadRequest.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

// writeDomainError maps an error to its HTTP status and code.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, scoring.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "unknown_mode", Wrap(op, err))
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", WrapKind(op, ErrUnprocessable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

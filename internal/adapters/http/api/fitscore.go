package api

import (
	"context"
	"net/http"

	"github.com/okian/teamfit/internal/domain/model"
)

// FitScoreDependencies defines the dependency of the fit score endpoint.
type FitScoreDependencies interface {
	ComputeFitScore(ctx context.Context, cand *model.Candidate, team *model.Team, mode model.PreferenceMode) (model.FitScoreResult, error)
}

// fitScoreRequest mirrors the OpenAPI schema for POST /v1/fit-score.
type fitScoreRequest struct {
	Candidate *model.Candidate     `json:"candidate"`
	Team      *model.Team          `json:"team"`
	Mode      model.PreferenceMode `json:"mode"`
}

// FitScoreHandler handles fit score requests.
type FitScoreHandler struct {
	deps FitScoreDependencies
}

// NewFitScoreHandler creates a new fit score handler.
func NewFitScoreHandler(deps FitScoreDependencies) *FitScoreHandler {
	return &FitScoreHandler{deps: deps}
}

// HandlePostFitScore handles POST /v1/fit-score requests.
func (h *FitScoreHandler) HandlePostFitScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_fit_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req fitScoreRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		writeDomainError(w, op, err)
		return
	}
	res, err := h.deps.ComputeFitScore(r.Context(), req.Candidate, req.Team, req.Mode)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

package api

import (
	"context"
	"net/http"

	"github.com/okian/teamfit/internal/domain/model"
)

// SimulateDependencies defines the dependency of the simulation endpoint.
type SimulateDependencies interface {
	Simulate(ctx context.Context, team *model.Team, cand *model.Candidate) (model.SimulationResult, error)
}

type simulateRequest struct {
	Team      *model.Team      `json:"team"`
	Candidate *model.Candidate `json:"candidate"`
}

// SimulateHandler handles team simulation requests.
type SimulateHandler struct {
	deps SimulateDependencies
}

// NewSimulateHandler creates a new simulation handler.
func NewSimulateHandler(deps SimulateDependencies) *SimulateHandler {
	return &SimulateHandler{deps: deps}
}

// HandlePostSimulate handles POST /v1/simulate requests.
func (h *SimulateHandler) HandlePostSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_simulate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req simulateRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		writeDomainError(w, op, err)
		return
	}
	res, err := h.deps.Simulate(r.Context(), req.Team, req.Candidate)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

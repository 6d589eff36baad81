package api

import (
	"context"
	"net/http"

	"github.com/okian/teamfit/internal/domain/model"
)

// BatchDependencies defines the dependency of the batch endpoint.
type BatchDependencies interface {
	AssignBatch(ctx context.Context, req model.BatchRequest) (model.BatchAssignmentResult, error)
}

// BatchHandler handles batch assignment requests.
type BatchHandler struct {
	deps BatchDependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps BatchDependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// HandlePostBatch handles POST /v1/batch-assignments requests.
func (h *BatchHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch_assignments"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req model.BatchRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		writeDomainError(w, op, err)
		return
	}
	res, err := h.deps.AssignBatch(r.Context(), req)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

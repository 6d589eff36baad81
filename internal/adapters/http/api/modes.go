package api

import (
	"net/http"

	"github.com/okian/teamfit/internal/domain/scoring"
)

// ModesProvider lists the registered preference modes.
type ModesProvider interface {
	Modes() []scoring.ModeConfig
}

// ModesHandler handles preference mode listing.
type ModesHandler struct {
	deps ModesProvider
}

// NewModesHandler creates a new modes handler.
func NewModesHandler(deps ModesProvider) *ModesHandler {
	return &ModesHandler{deps: deps}
}

// HandleGetModes handles GET /v1/modes requests.
func (h *ModesHandler) HandleGetModes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"modes": h.deps.Modes()})
}

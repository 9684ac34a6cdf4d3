// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/gridironlabs/warroom/internal/domain/model"
)

// ScoutDependencies defines the interface for staff reads.
type ScoutDependencies interface {
	ScoutViews(ctx context.Context, sameTeam bool) []model.ScoutView
}

// ScoutsHandler handles scouting staff requests.
type ScoutsHandler struct {
	deps ScoutDependencies
}

// NewScoutsHandler creates a new scouts handler.
func NewScoutsHandler(deps ScoutDependencies) *ScoutsHandler {
	return &ScoutsHandler{deps: deps}
}

// HandleGetScouts handles GET /scouts requests. Contract terms appear
// only with team=own; hidden attributes never appear at all.
func (h *ScoutsHandler) HandleGetScouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sameTeam := r.URL.Query().Get("team") == "own"
	writeJSON(w, http.StatusOK, h.deps.ScoutViews(r.Context(), sameTeam))
}

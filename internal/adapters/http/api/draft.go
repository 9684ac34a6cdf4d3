// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// DraftDependencies defines the interface for draft-room reads.
type DraftDependencies interface {
	Recommendations(ctx context.Context) (RoomCall, error)
}

// DraftHandler handles draft-room requests.
type DraftHandler struct {
	deps DraftDependencies
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(deps DraftDependencies) *DraftHandler {
	return &DraftHandler{deps: deps}
}

// HandleGetRecommendations handles GET /draft/recommendations requests.
// Every scout recommends from the full remaining pool.
func (h *DraftHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	call, err := h.deps.Recommendations(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

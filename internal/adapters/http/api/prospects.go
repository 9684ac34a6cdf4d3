// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gridironlabs/warroom/internal/domain/model"
)

// ProspectDependencies defines the interface for per-subject reads.
type ProspectDependencies interface {
	SubjectReports(ctx context.Context, subjectID string) ([]model.ScoutReport, error)
	Consensus(ctx context.Context, subjectID string) (model.Consensus, error)
}

// ProspectsHandler handles per-subject report and consensus requests.
type ProspectsHandler struct {
	deps ProspectDependencies
}

// NewProspectsHandler creates a new prospects handler.
func NewProspectsHandler(deps ProspectDependencies) *ProspectsHandler {
	return &ProspectsHandler{deps: deps}
}

// HandleGetProspect handles GET /prospects/{id}/reports and
// GET /prospects/{id}/consensus requests. True attributes never cross
// this boundary; both views are built from filed reports only.
func (h *ProspectsHandler) HandleGetProspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameters after /prospects/
	rest := strings.TrimPrefix(r.URL.Path, "/prospects/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	subjectID := parts[0]
	switch parts[1] {
	case "reports":
		reports, err := h.deps.SubjectReports(r.Context(), subjectID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reports)
	case "consensus":
		consensus, err := h.deps.Consensus(r.Context(), subjectID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, consensus)
	default:
		http.NotFound(w, r)
	}
}

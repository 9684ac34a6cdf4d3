// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"sync/atomic"
)

// CycleDependencies defines the interface for pipeline triggers.
type CycleDependencies interface {
	RunCycle(ctx context.Context) error
	AdvanceSeason(ctx context.Context) error
}

// CycleHandler handles cycle and season triggers. Both operations run
// synchronously; a single busy flag turns concurrent triggers into 429s
// instead of queueing them up behind the pipeline lock.
type CycleHandler struct {
	deps CycleDependencies
	busy atomic.Bool
}

// NewCycleHandler creates a new cycle handler.
func NewCycleHandler(deps CycleDependencies) *CycleHandler {
	return &CycleHandler{deps: deps}
}

// HandlePostCycle handles POST /cycle requests. It runs one full
// scouting cycle and responds once the board is rebuilt.
func (h *CycleHandler) HandlePostCycle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if !h.busy.CompareAndSwap(false, true) {
		writeError(w, http.StatusTooManyRequests, "busy", ErrBusy)
		return
	}
	defer h.busy.Store(false)
	if err := h.deps.RunCycle(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "cycle_completed"})
}

// HandlePostSeason handles POST /season requests. It resolves every
// outstanding projection against true values and advances the year.
func (h *CycleHandler) HandlePostSeason(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if !h.busy.CompareAndSwap(false, true) {
		writeError(w, http.StatusTooManyRequests, "busy", ErrBusy)
		return
	}
	defer h.busy.Store(false)
	if err := h.deps.AdvanceSeason(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "season_advanced"})
}

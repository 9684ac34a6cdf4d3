// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gridironlabs/warroom/internal/domain/model"
)

// BoardDependencies defines the interface for big-board reads.
type BoardDependencies interface {
	Board(ctx context.Context, limit int) ([]Ranking, error)
	PositionBoard(ctx context.Context, pos model.Position, limit int) ([]Ranking, error)
	Tiers(ctx context.Context) (map[model.Tier][]Ranking, error)
	Trends(ctx context.Context, limit int) (TrendView, error)
}

// BoardHandler handles big-board requests.
type BoardHandler struct {
	deps     BoardDependencies
	maxLimit int
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps BoardDependencies, maxLimit int) *BoardHandler {
	return &BoardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetBoard handles GET /board?limit=N requests. Without a limit
// the response is capped at maxLimit rows.
func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := parseLimit(r, h.maxLimit, h.maxLimit)
	if err != nil {
		writeLimitError(w, err)
		return
	}
	rows, err := h.deps.Board(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleGetPositionBoard handles GET /board/positions/{pos}?limit=N
// requests.
func (h *BoardHandler) HandleGetPositionBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /board/positions/
	raw := strings.TrimPrefix(r.URL.Path, "/board/positions/")
	if raw == "" || strings.Contains(raw, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	pos, ok := model.ParsePosition(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_position", ErrUnknownPosition)
		return
	}
	limit, err := parseLimit(r, h.maxLimit, h.maxLimit)
	if err != nil {
		writeLimitError(w, err)
		return
	}
	rows, err := h.deps.PositionBoard(r.Context(), pos, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleGetTiers handles GET /board/tiers requests.
func (h *BoardHandler) HandleGetTiers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tiers, err := h.deps.Tiers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tiers)
}

// HandleGetTrends handles GET /board/trends?limit=N requests. The limit
// caps each of the riser, faller, and best-value lists.
func (h *BoardHandler) HandleGetTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := parseLimit(r, h.maxLimit, h.maxLimit)
	if err != nil {
		writeLimitError(w, err)
		return
	}
	trends, err := h.deps.Trends(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

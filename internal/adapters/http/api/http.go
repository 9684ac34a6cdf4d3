// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gridironlabs/warroom/internal/adapters/repository"
	"github.com/gridironlabs/warroom/internal/app"
	"github.com/gridironlabs/warroom/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages;
// the app.Service satisfies the whole bundle.
type Dependencies interface {
	BoardDependencies
	ProspectDependencies
	ScoutDependencies
	DraftDependencies
	CycleDependencies
}

// Ranking mirrors a big-board row returned by read queries.
type Ranking = model.ProspectRanking

// TrendView bundles the riser, faller, and best-value lists.
type TrendView = app.TrendView

// RoomCall is the full draft-room recommendation response.
type RoomCall = app.RoomCall

// Server wires HTTP routes for the war-room API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	boardHandler     *BoardHandler
	prospectsHandler *ProspectsHandler
	scoutsHandler    *ScoutsHandler
	draftHandler     *DraftHandler
	cycleHandler     *CycleHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers. maxBoardLimit
// caps the limit query parameter on board reads.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxBoardLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		boardHandler:     NewBoardHandler(deps, maxBoardLimit),
		prospectsHandler: NewProspectsHandler(deps),
		scoutsHandler:    NewScoutsHandler(deps),
		draftHandler:     NewDraftHandler(deps),
		cycleHandler:     NewCycleHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/board", MetricsMiddleware(s.boardHandler.HandleGetBoard, "board"))
	mux.HandleFunc("/board/tiers", MetricsMiddleware(s.boardHandler.HandleGetTiers, "board_tiers"))
	mux.HandleFunc("/board/trends", MetricsMiddleware(s.boardHandler.HandleGetTrends, "board_trends"))
	mux.HandleFunc("/board/positions/", MetricsMiddleware(s.boardHandler.HandleGetPositionBoard, "board_positions"))
	mux.HandleFunc("/prospects/", MetricsMiddleware(s.prospectsHandler.HandleGetProspect, "prospects"))
	mux.HandleFunc("/scouts", MetricsMiddleware(s.scoutsHandler.HandleGetScouts, "scouts"))
	mux.HandleFunc("/draft/recommendations", MetricsMiddleware(s.draftHandler.HandleGetRecommendations, "draft_recommendations"))
	mux.HandleFunc("/cycle", MetricsMiddleware(s.cycleHandler.HandlePostCycle, "cycle"))
	mux.HandleFunc("/season", MetricsMiddleware(s.cycleHandler.HandlePostSeason, "season"))
}

type ackResponse struct {
	Status string `json:"status"`
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

// writeDomainError translates sentinel errors from the service layer
// into status codes, defaulting to 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, app.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// writeLimitError maps limit parsing failures onto 400 responses with a
// distinct code for values over the cap.
func writeLimitError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrLimitExceeded) {
		writeError(w, http.StatusBadRequest, "limit_exceeded", err)
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", err)
}

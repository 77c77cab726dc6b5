// Package api declares the HTTP contracts and route registration for the
// ranking service. The transport stays thin: handlers validate, delegate to
// the service, and translate error kinds to status codes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/faceoff/internal/adapters/repository"
	"github.com/okian/faceoff/internal/app"
	"github.com/okian/faceoff/internal/domain/model"
)

// Dependencies bundles the service operations the handlers need. An
// interface keeps the handler layer loosely coupled to the app package.
type Dependencies interface {
	SelectNextPair(ctx context.Context, scope string, category model.Category) (model.Pair, error)
	RecordComparison(ctx context.Context, scope, winnerID, loserID string, isDraw bool) (model.ComparisonOutcome, error)
	InitializeSystem(ctx context.Context, scope string) (model.InitResult, error)
	ResetSystem(ctx context.Context, scope string) (model.ResetResult, error)
	RankedItems(ctx context.Context, scope string, category model.Category, limit, minMatches int) ([]model.RankedItem, error)
	AddItem(ctx context.Context, scope, title string, category model.Category, externalRef string) (model.Item, error)
	ListItems(ctx context.Context, scope string, category model.Category) ([]model.Item, error)
	Stats(ctx context.Context, scope string) map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	pairHandler       *PairHandler
	comparisonHandler *ComparisonHandler
	rankingsHandler   *RankingsHandler
	systemHandler     *SystemHandler
	itemsHandler      *ItemsHandler
	statsHandler      *StatsHandler
	healthHandler     *HealthHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, maxRankingLimit int) *Server {
	return &Server{
		pairHandler:       NewPairHandler(deps),
		comparisonHandler: NewComparisonHandler(deps),
		rankingsHandler:   NewRankingsHandler(deps, maxRankingLimit),
		systemHandler:     NewSystemHandler(deps),
		itemsHandler:      NewItemsHandler(deps),
		statsHandler:      NewStatsHandler(deps),
		healthHandler:     NewHealthHandler(),
	}
}

// Router builds the chi router with all routes attached.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)

	r.Route("/api/v1/users/{scope}", func(r chi.Router) {
		r.Get("/pair", MetricsMiddleware(s.pairHandler.HandleGetPair, "pair"))
		r.Post("/comparisons", MetricsMiddleware(s.comparisonHandler.HandlePostComparison, "comparisons"))
		r.Get("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
		r.Post("/items", MetricsMiddleware(s.itemsHandler.HandlePostItem, "items"))
		r.Get("/items", MetricsMiddleware(s.itemsHandler.HandleGetItems, "items"))
		r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
		r.Post("/system/initialize", MetricsMiddleware(s.systemHandler.HandleInitialize, "system_initialize"))
		r.Post("/system/reset", MetricsMiddleware(s.systemHandler.HandleReset, "system_reset"))
	})

	return r
}

// scopeParam pulls the user scope out of the route.
func scopeParam(r *http.Request) string {
	return chi.URLParam(r, "scope")
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

// writeServiceError translates service error kinds to HTTP responses.
// Insufficient items is an expected state, reported with a code the UI can
// turn into a friendly prompt.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInsufficientItems):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_items", err)
	case errors.Is(err, app.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

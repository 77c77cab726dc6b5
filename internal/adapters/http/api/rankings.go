package api

import (
	"net/http"
	"strconv"

	"github.com/okian/faceoff/internal/domain/model"
)

// RankingsHandler serves ranked collection reads.
type RankingsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetRankings handles
// GET /api/v1/users/{scope}/rankings?category=&limit=&min_matches=.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	scope := scopeParam(r)
	category := model.Category(r.URL.Query().Get("category"))

	limit := h.maxLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadLimit)
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", ErrLimitExceeded)
			return
		}
		limit = n
	}

	minMatches := 0
	if raw := r.URL.Query().Get("min_matches"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadMinMatches)
			return
		}
		minMatches = n
	}

	ranked, err := h.deps.RankedItems(r.Context(), scope, category, limit, minMatches)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ComparisonHandler records resolved duels.
type ComparisonHandler struct {
	deps Dependencies
}

// NewComparisonHandler creates a new comparison handler.
func NewComparisonHandler(deps Dependencies) *ComparisonHandler {
	return &ComparisonHandler{deps: deps}
}

// comparisonRequest mirrors the POST /comparisons body.
type comparisonRequest struct {
	WinnerID string `json:"winner_id"`
	LoserID  string `json:"loser_id"`
	Draw     bool   `json:"draw"`
}

func (c comparisonRequest) validate() error {
	switch {
	case strings.TrimSpace(c.WinnerID) == "":
		return ErrMissingWinner
	case strings.TrimSpace(c.LoserID) == "":
		return ErrMissingLoser
	case c.WinnerID == c.LoserID:
		return ErrSelfComparison
	}
	return nil
}

// HandlePostComparison handles POST /api/v1/users/{scope}/comparisons.
func (h *ComparisonHandler) HandlePostComparison(w http.ResponseWriter, r *http.Request) {
	scope := scopeParam(r)

	var req comparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadBody)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	outcome, err := h.deps.RecordComparison(r.Context(), scope, req.WinnerID, req.LoserID, req.Draw)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

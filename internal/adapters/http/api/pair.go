package api

import (
	"net/http"

	"github.com/okian/faceoff/internal/domain/model"
)

// PairHandler serves the next comparison pair.
type PairHandler struct {
	deps Dependencies
}

// NewPairHandler creates a new pair handler.
func NewPairHandler(deps Dependencies) *PairHandler {
	return &PairHandler{deps: deps}
}

// HandleGetPair handles GET /api/v1/users/{scope}/pair?category=.
func (h *PairHandler) HandleGetPair(w http.ResponseWriter, r *http.Request) {
	scope := scopeParam(r)
	category := model.Category(r.URL.Query().Get("category"))

	pair, err := h.deps.SelectNextPair(r.Context(), scope, category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

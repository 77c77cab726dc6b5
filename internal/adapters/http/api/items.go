package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/faceoff/internal/domain/model"
)

// ItemsHandler registers and lists collection items. Item CRUD is host
// glue, not part of the rating engine; this surface exists so the in-memory
// store can be populated.
type ItemsHandler struct {
	deps Dependencies
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(deps Dependencies) *ItemsHandler {
	return &ItemsHandler{deps: deps}
}

// itemRequest mirrors the POST /items body.
type itemRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	ExternalRef string `json:"external_ref"`
}

// HandlePostItem handles POST /api/v1/users/{scope}/items.
func (h *ItemsHandler) HandlePostItem(w http.ResponseWriter, r *http.Request) {
	scope := scopeParam(r)

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadBody)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingTitle)
		return
	}

	item, err := h.deps.AddItem(r.Context(), scope, req.Title, model.Category(req.Category), req.ExternalRef)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// HandleGetItems handles GET /api/v1/users/{scope}/items?category=.
func (h *ItemsHandler) HandleGetItems(w http.ResponseWriter, r *http.Request) {
	scope := scopeParam(r)
	category := model.Category(r.URL.Query().Get("category"))

	items, err := h.deps.ListItems(r.Context(), scope, category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

package api

import "net/http"

// SystemHandler gates the lifecycle operations. Reset is irreversible, so it
// lives behind its own explicit POST rather than a flag on initialize.
type SystemHandler struct {
	deps Dependencies
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(deps Dependencies) *SystemHandler {
	return &SystemHandler{deps: deps}
}

// HandleInitialize handles POST /api/v1/users/{scope}/system/initialize.
// Re-initializing an existing scope is a no-op reported as created=false.
func (h *SystemHandler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	result, err := h.deps.InitializeSystem(r.Context(), scopeParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleReset handles POST /api/v1/users/{scope}/system/reset.
func (h *SystemHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	result, err := h.deps.ResetSystem(r.Context(), scopeParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

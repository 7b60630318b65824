// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RefreshHandler triggers a pipeline recompute.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandlePostRefresh handles POST /refresh requests. On failure the
// previously published snapshot set stays in place untouched.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "refresh_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: "ok"})
}

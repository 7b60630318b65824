// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// FiltersHandler serves the selectable metric and position values, the
// dropdown sources for the external presentation layer.
type FiltersHandler struct {
	deps Dependencies
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(deps Dependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

type filtersResponse struct {
	Metrics       []string `json:"metrics"`
	DefaultMetric string   `json:"default_metric"`
	Positions     []string `json:"positions"`
}

// HandleGetFilters handles GET /filters requests.
func (h *FiltersHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	writeJSON(w, http.StatusOK, filtersResponse{
		Metrics:       h.deps.MetricNames(ctx),
		DefaultMetric: h.deps.DefaultMetric(ctx),
		Positions:     h.deps.Positions(ctx),
	})
}

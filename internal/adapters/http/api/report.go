// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/ekrowl/acwr/internal/adapters/repository"
)

// ReportHandler handles snapshot report requests.
type ReportHandler struct {
	deps Dependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// reportResponse is the shape returned by GET /report.
type reportResponse struct {
	Metric   string                 `json:"metric"`
	Position string                 `json:"position,omitempty"`
	Athletes []repository.ReportRow `json:"athletes"`
}

// HandleGetReport handles GET /report?metric=M&position=P requests.
//
// An unrecognized metric falls back to the default metric; an unrecognized
// position falls back to no position filtering. Selection never fails on bad
// filter input.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	metric := r.URL.Query().Get("metric")
	if !h.knownMetric(ctx, metric) {
		metric = h.deps.DefaultMetric(ctx)
	}

	position := r.URL.Query().Get("position")
	if position != "" && !h.knownPosition(ctx, position) {
		position = ""
	}

	rows, err := h.deps.Report(ctx, metric, position)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{
		Metric:   metric,
		Position: position,
		Athletes: rows,
	})
}

func (h *ReportHandler) knownMetric(ctx context.Context, name string) bool {
	for _, m := range h.deps.MetricNames(ctx) {
		if m == name {
			return true
		}
	}
	return false
}

func (h *ReportHandler) knownPosition(ctx context.Context, name string) bool {
	for _, p := range h.deps.Positions(ctx) {
		if p == name {
			return true
		}
	}
	return false
}

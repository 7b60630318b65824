// Package api declares HTTP contracts and route registration helpers for the
// read surface consumed by the presentation layer.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ekrowl/acwr/internal/adapters/repository"
	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/ratio"
)

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the app service.
type Dependencies interface {
	// Report returns classified snapshot rows for one metric and optional
	// position filter.
	Report(ctx context.Context, metric, position string) ([]repository.ReportRow, error)

	// Athlete returns the full snapshot for one athlete.
	Athlete(ctx context.Context, athleteID string) (model.Snapshot, error)

	// Positions lists the distinct positions in the published set.
	Positions(ctx context.Context) []string

	// MetricNames lists the configured metric columns.
	MetricNames(ctx context.Context) []string

	// DefaultMetric is the fallback for unrecognized metric selections.
	DefaultMetric(ctx context.Context) string

	// Classify labels an ACWR value.
	Classify(ctx context.Context, acwr model.Value) ratio.Risk

	// Refresh re-ingests the inputs, recomputes the pipeline and swaps the
	// published set atomically.
	Refresh(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	reportHandler  *ReportHandler
	athleteHandler *AthleteHandler
	filtersHandler *FiltersHandler
	refreshHandler *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		reportHandler:  NewReportHandler(deps),
		athleteHandler: NewAthleteHandler(deps),
		filtersHandler: NewFiltersHandler(deps),
		refreshHandler: NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
	mux.HandleFunc("/filters", MetricsMiddleware(s.filtersHandler.HandleGetFilters, "filters"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
	mux.HandleFunc("/athletes/", MetricsMiddleware(s.athleteHandler.HandleGetAthlete, "athletes"))
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

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

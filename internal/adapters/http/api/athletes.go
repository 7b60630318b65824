// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/ratio"
)

// AthleteHandler handles single-athlete snapshot requests.
type AthleteHandler struct {
	deps Dependencies
}

// NewAthleteHandler creates a new athlete handler.
func NewAthleteHandler(deps Dependencies) *AthleteHandler {
	return &AthleteHandler{deps: deps}
}

// metricWindowResponse is one metric's derived loads in an athlete response.
type metricWindowResponse struct {
	Acute   model.Value `json:"acute_avg"`
	Chronic model.Value `json:"chronic_avg"`
	ACWR    model.Value `json:"acwr"`
	Risk    ratio.Risk  `json:"risk"`
}

// athleteResponse is the shape returned by GET /athletes/{id}.
type athleteResponse struct {
	AthleteID   string                          `json:"athlete_id"`
	Position    string                          `json:"position,omitempty"`
	SessionDate *string                         `json:"session_date"`
	Metrics     map[string]metricWindowResponse `json:"metrics"`
}

// HandleGetAthlete handles GET /athletes/{id} requests.
func (h *AthleteHandler) HandleGetAthlete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/athletes/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	snap, err := h.deps.Athlete(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	resp := athleteResponse{
		AthleteID: snap.AthleteID,
		Position:  snap.Position,
		Metrics:   make(map[string]metricWindowResponse, len(snap.Windows)),
	}
	if snap.HasSession {
		date := snap.SessionDate.Format(time.DateOnly)
		resp.SessionDate = &date
	}
	for metric, win := range snap.Windows {
		resp.Metrics[metric] = metricWindowResponse{
			Acute:   win.Acute,
			Chronic: win.Chronic,
			ACWR:    win.ACWR,
			Risk:    h.deps.Classify(r.Context(), win.ACWR),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Package repository defines the snapshot store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/ratio"
)

// ReportRow is one classified snapshot row for a single metric, shaped for
// the presentation layer.
type ReportRow struct {
	AthleteID string      `json:"athlete_id"`
	Position  string      `json:"position,omitempty"`
	Acute     model.Value `json:"acute_avg"`
	Chronic   model.Value `json:"chronic_avg"`
	ACWR      model.Value `json:"acwr"`
	Risk      ratio.Risk  `json:"risk"`
}

// Store provides read access to the published snapshot set and an atomic
// whole-set replacement. Reads are pure and lock-free for callers; the set
// is never mutated field-by-field under concurrent readers.
type Store interface {
	// Swap atomically replaces the entire published snapshot set.
	Swap(ctx context.Context, snapshots []model.Snapshot, computedAt time.Time)

	// Report returns the classified rows for one metric, optionally
	// filtered by exact position match (empty position means no filter).
	// Rows where both acute and chronic are undefined are omitted.
	Report(ctx context.Context, metric, position string) ([]ReportRow, error)

	// Athlete returns the full snapshot for one athlete.
	// Returns ErrNotFound if the athlete is unknown.
	Athlete(ctx context.Context, athleteID string) (model.Snapshot, error)

	// Positions returns the distinct non-empty positions in the set, sorted.
	Positions(ctx context.Context) []string

	// Count returns the number of athletes in the published set.
	Count(ctx context.Context) int

	// ComputedAt returns when the published set was computed.
	ComputedAt(ctx context.Context) time.Time
}

// Package model contains domain models passed between pipeline stages.
package model

import "time"

// LoadRecord is one training session for one athlete, produced by the
// external loader. Immutable once ingested.
type LoadRecord struct {
	AthleteID   string
	SessionDate time.Time
	Metrics     map[string]Value // metric name -> value; absent or undefined means missing
}

// PositionRecord maps an athlete to a position label. One per athlete.
type PositionRecord struct {
	AthleteID string
	Position  string // empty means no position recorded
}

// EnrichedRecord is a LoadRecord joined with positional metadata.
//
// HasSession is false for athletes present in the position registry with no
// load history at all; such rows carry a zero SessionDate and no metrics.
type EnrichedRecord struct {
	AthleteID   string
	Position    string
	SessionDate time.Time
	HasSession  bool
	Metrics     map[string]Value
}

// MetricWindow holds the derived load figures for one metric at one row.
type MetricWindow struct {
	Acute   Value // trailing mean over the last <=7 rows
	Chronic Value // trailing mean over the last <=28 rows
	ACWR    Value // Acute / Chronic; undefined when Chronic is zero or undefined
}

// WindowedRecord is an EnrichedRecord extended with per-metric rolling loads.
type WindowedRecord struct {
	EnrichedRecord
	Windows map[string]MetricWindow
}

// Snapshot is the most recent WindowedRecord per athlete, used for
// at-a-glance display.
type Snapshot = WindowedRecord

// CloneMetrics returns a copy of the record's metric map. Stages never
// mutate their input table, so derived rows copy before changing anything.
func (r EnrichedRecord) CloneMetrics() map[string]Value {
	if r.Metrics == nil {
		return nil
	}
	out := make(map[string]Value, len(r.Metrics))
	for k, v := range r.Metrics {
		out[k] = v
	}
	return out
}

// Package rolling computes trailing acute and chronic load averages per
// athlete per metric.
package rolling

import (
	"github.com/montanaflynn/stats"

	"github.com/ekrowl/acwr/internal/domain/model"
)

// Default trailing window sizes in rows.
const (
	DefaultAcuteWindow   = 7
	DefaultChronicWindow = 28
)

// Window selects the trailing range of rows feeding the mean at index i.
// Implementations return the first included index; the range is [start, i].
//
// The shipped policy is row-indexed: the 7th most recent record counts
// regardless of calendar days elapsed. A date-aware policy can implement
// this interface without touching the estimator.
type Window interface {
	Start(rows []model.EnrichedRecord, i int) int
}

// RowWindow includes the trailing n rows, or fewer when history is short.
type RowWindow int

// Start returns max(0, i-n+1).
func (w RowWindow) Start(_ []model.EnrichedRecord, i int) int {
	start := i - int(w) + 1
	if start < 0 {
		start = 0
	}
	return start
}

// Estimator annotates per-athlete row sequences with rolling load averages.
type Estimator struct {
	metricNames []string
	acute       Window
	chronic     Window
}

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithAcuteWindow overrides the acute window policy.
func WithAcuteWindow(w Window) Option {
	return func(e *Estimator) {
		if w != nil {
			e.acute = w
		}
	}
}

// WithChronicWindow overrides the chronic window policy.
func WithChronicWindow(w Window) Option {
	return func(e *Estimator) {
		if w != nil {
			e.chronic = w
		}
	}
}

// New creates an Estimator for the given metric names.
func New(metricNames []string, opts ...Option) *Estimator {
	e := &Estimator{
		metricNames: metricNames,
		acute:       RowWindow(DefaultAcuteWindow),
		chronic:     RowWindow(DefaultChronicWindow),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Annotate computes acute and chronic averages for one athlete's ordered row
// sequence. It is a pure function over a single athlete's rows; callers map
// it across athletes. A single available row yields an average equal to
// itself (minimum periods 1); a window with no defined values yields an
// undefined average. The input is not mutated.
func (e *Estimator) Annotate(group []model.EnrichedRecord) []model.WindowedRecord {
	out := make([]model.WindowedRecord, len(group))
	for i, r := range group {
		windows := make(map[string]model.MetricWindow, len(e.metricNames))
		for _, metric := range e.metricNames {
			windows[metric] = model.MetricWindow{
				Acute:   trailingMean(group, i, e.acute, metric),
				Chronic: trailingMean(group, i, e.chronic, metric),
			}
		}
		out[i] = model.WindowedRecord{
			EnrichedRecord: r,
			Windows:        windows,
		}
	}
	return out
}

// trailingMean averages the defined values of metric over [w.Start(i), i].
func trailingMean(group []model.EnrichedRecord, i int, w Window, metric string) model.Value {
	values := make([]float64, 0, i-w.Start(group, i)+1)
	for j := w.Start(group, i); j <= i; j++ {
		if v, ok := group[j].Metrics[metric].Float64(); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return model.None()
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return model.None()
	}
	return model.Some(mean)
}

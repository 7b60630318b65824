// Package ratio derives the acute:chronic workload ratio and its risk
// classification.
package ratio

import (
	"github.com/ekrowl/acwr/internal/domain/model"
)

// Default classification thresholds.
const (
	DefaultUnderThreshold = 0.8
	DefaultOverThreshold  = 1.5
)

// Derive returns a new table with the ACWR field filled in for every metric
// window: acwr = acute / chronic. The result is undefined when either input
// is undefined or chronic is zero; division never raises. The input table is
// not mutated.
func Derive(records []model.WindowedRecord) []model.WindowedRecord {
	out := make([]model.WindowedRecord, len(records))
	for i, r := range records {
		windows := make(map[string]model.MetricWindow, len(r.Windows))
		for metric, w := range r.Windows {
			w.ACWR = divide(w.Acute, w.Chronic)
			windows[metric] = w
		}
		out[i] = model.WindowedRecord{
			EnrichedRecord: r.EnrichedRecord,
			Windows:        windows,
		}
	}
	return out
}

func divide(acute, chronic model.Value) model.Value {
	a, aok := acute.Float64()
	c, cok := chronic.Float64()
	if !aok || !cok || c == 0 {
		return model.None()
	}
	return model.Some(a / c)
}

// Risk is the load classification derived from an ACWR value.
type Risk string

// Risk labels surfaced to the presentation layer.
const (
	RiskUnder  Risk = "under-loaded"
	RiskOver   Risk = "over-loaded"
	RiskNormal Risk = "normal"
	RiskNoData Risk = "no data"
)

// Classifier maps ACWR values onto risk labels.
type Classifier struct {
	under float64
	over  float64
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithThresholds overrides the under/over boundaries. Ignored unless
// 0 < under < over.
func WithThresholds(under, over float64) Option {
	return func(c *Classifier) {
		if under > 0 && over > under {
			c.under = under
			c.over = over
		}
	}
}

// NewClassifier creates a Classifier with the default thresholds.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		under: DefaultUnderThreshold,
		over:  DefaultOverThreshold,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify labels an ACWR value. An undefined ratio is non-actionable and
// classifies as RiskNoData rather than failing.
func (c *Classifier) Classify(acwr model.Value) Risk {
	v, ok := acwr.Float64()
	switch {
	case !ok:
		return RiskNoData
	case v < c.under:
		return RiskUnder
	case v > c.over:
		return RiskOver
	default:
		return RiskNormal
	}
}

// Package outlier suppresses unrealistically high single-session load spikes.
//
// Training logs are assumed to undercount rather than overcount load, so only
// the upper tail is trimmed; low and ordinary values always survive.
package outlier

import (
	"github.com/montanaflynn/stats"

	"github.com/ekrowl/acwr/internal/domain/model"
)

// DefaultMultiplier is the IQR multiplier used when none is configured.
const DefaultMultiplier = 2.5

// Bound removes, per athlete, rows whose value for metric exceeds
// Q3 + multiplier*IQR of that athlete's values. Rows with a missing value
// for the metric pass trivially. The input must be ordered by athlete; the
// output preserves row order and never alters a retained value.
func Bound(records []model.EnrichedRecord, metric string, multiplier float64) []model.EnrichedRecord {
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}

	out := make([]model.EnrichedRecord, 0, len(records))
	start := 0
	for i := 1; i <= len(records); i++ {
		if i < len(records) && records[i].AthleteID == records[start].AthleteID {
			continue
		}
		group := records[start:i]
		upper, bounded := upperBound(group, metric, multiplier)
		for _, r := range group {
			v, defined := r.Metrics[metric].Float64()
			if bounded && defined && v > upper {
				continue
			}
			out = append(out, r)
		}
		start = i
	}
	return out
}

// BoundAll folds Bound over the metric list in order. The fold is load-bearing:
// quantiles for metric N are computed only over rows that survived bounding
// for metrics 1..N-1, so reordering the list changes the output.
func BoundAll(records []model.EnrichedRecord, metricNames []string, multiplier float64) []model.EnrichedRecord {
	for _, metric := range metricNames {
		records = Bound(records, metric, multiplier)
	}
	return records
}

// upperBound computes Q3 + multiplier*IQR over the group's defined values for
// metric. The second return is false when the group has no defined values and
// no bounding applies.
//
// Quartiles use the median-of-halves convention, not linear interpolation,
// so the bound can differ from interpolating estimators on small samples
// (e.g. [10,20,30,40]: Q3=35 here vs 32.5 interpolated).
func upperBound(group []model.EnrichedRecord, metric string, multiplier float64) (float64, bool) {
	values := make([]float64, 0, len(group))
	for _, r := range group {
		if v, ok := r.Metrics[metric].Float64(); ok {
			values = append(values, v)
		}
	}

	switch len(values) {
	case 0:
		return 0, false
	case 1:
		// Q1 = Q3 = the single value, IQR = 0; a lone row is never filtered.
		return values[0], true
	}

	q, err := stats.Quartile(values)
	if err != nil {
		return 0, false
	}
	iqr := q.Q3 - q.Q1
	return q.Q3 + multiplier*iqr, true
}

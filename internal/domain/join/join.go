// Package join merges load records with positional metadata per athlete.
package join

import (
	"sort"

	"github.com/ekrowl/acwr/internal/domain/model"
)

// Enrich joins load records into the position registry on athlete id.
//
// The join is anchored on the registry (right join): every registered athlete
// is preserved, athletes with no load history yield a single sessionless row,
// and load rows for unregistered athletes are discarded. Duplicate
// (athlete, date) pairs pass through unchanged.
//
// Output is stably sorted by (athlete id asc, session date asc). Downstream
// windowed stages rely on this ordering; it is not re-established later.
func Enrich(loads []model.LoadRecord, positions []model.PositionRecord) []model.EnrichedRecord {
	registry := make(map[string]string, len(positions))
	order := make([]string, 0, len(positions))
	for _, p := range positions {
		if _, seen := registry[p.AthleteID]; !seen {
			order = append(order, p.AthleteID)
		}
		registry[p.AthleteID] = p.Position
	}

	enriched := make([]model.EnrichedRecord, 0, len(loads))
	hasLoad := make(map[string]bool, len(registry))
	for _, l := range loads {
		pos, registered := registry[l.AthleteID]
		if !registered {
			continue
		}
		hasLoad[l.AthleteID] = true
		enriched = append(enriched, model.EnrichedRecord{
			AthleteID:   l.AthleteID,
			Position:    pos,
			SessionDate: l.SessionDate,
			HasSession:  true,
			Metrics:     l.Metrics,
		})
	}

	// Registered athletes with no load history still appear, with no
	// session and no metric values.
	for _, id := range order {
		if hasLoad[id] {
			continue
		}
		enriched = append(enriched, model.EnrichedRecord{
			AthleteID: id,
			Position:  registry[id],
		})
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		if enriched[i].AthleteID != enriched[j].AthleteID {
			return enriched[i].AthleteID < enriched[j].AthleteID
		}
		return enriched[i].SessionDate.Before(enriched[j].SessionDate)
	})

	return enriched
}

// GroupByAthlete splits an ordered enriched table into per-athlete slices,
// preserving order within and across groups. Each group is a subslice of the
// input, not a copy.
func GroupByAthlete(records []model.EnrichedRecord) [][]model.EnrichedRecord {
	var groups [][]model.EnrichedRecord
	start := 0
	for i := 1; i <= len(records); i++ {
		if i == len(records) || records[i].AthleteID != records[start].AthleteID {
			groups = append(groups, records[start:i])
			start = i
		}
	}
	return groups
}

// Package snapshot extracts each athlete's most recent record from the
// windowed series.
package snapshot

import (
	"github.com/ekrowl/acwr/internal/domain/model"
)

// Latest returns one Snapshot per athlete: the row with the maximum session
// date. On ties the last row in sort order wins, which is deterministic
// given the join stage's (athlete, date) ordering. Athletes whose only row
// is sessionless still appear, with every derived field undefined.
func Latest(records []model.WindowedRecord) []model.Snapshot {
	snapshots := make([]model.Snapshot, 0)
	for start := 0; start < len(records); {
		end := start
		for end < len(records) && records[end].AthleteID == records[start].AthleteID {
			end++
		}
		best := start
		for i := start + 1; i < end; i++ {
			// Not Before covers both a later date and an equal-date tie,
			// where the later row wins.
			if !records[i].SessionDate.Before(records[best].SessionDate) {
				best = i
			}
		}
		snapshots = append(snapshots, records[best])
		start = end
	}
	return snapshots
}

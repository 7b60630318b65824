package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/ratio"
	"github.com/ekrowl/acwr/pkg/metrics"
)

// snapshotSet is one immutable published generation. Readers hold a pointer
// to a generation; Swap installs a new one and never touches an old one.
type snapshotSet struct {
	snapshots  []model.Snapshot
	byID       map[string]int
	positions  []string
	computedAt time.Time
}

// MemStore is the in-memory Store. The batch pipeline recomputes everything
// per run, so the store holds a single immutable set swapped under a RWMutex
// rather than an incrementally updated structure.
type MemStore struct {
	mu         sync.RWMutex
	current    *snapshotSet
	classifier *ratio.Classifier
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClassifier sets the risk classifier applied to report rows.
func WithClassifier(c *ratio.Classifier) Option {
	return func(s *MemStore) {
		if c != nil {
			s.classifier = c
		}
	}
}

// NewMemStore creates an empty MemStore.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		current:    &snapshotSet{byID: map[string]int{}},
		classifier: ratio.NewClassifier(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Swap atomically replaces the published snapshot set.
func (s *MemStore) Swap(_ context.Context, snapshots []model.Snapshot, computedAt time.Time) {
	set := &snapshotSet{
		snapshots:  snapshots,
		byID:       make(map[string]int, len(snapshots)),
		computedAt: computedAt,
	}
	seen := make(map[string]bool)
	for i, snap := range snapshots {
		set.byID[snap.AthleteID] = i
		if snap.Position != "" && !seen[snap.Position] {
			seen[snap.Position] = true
			set.positions = append(set.positions, snap.Position)
		}
	}
	sort.Strings(set.positions)

	s.mu.Lock()
	s.current = set
	s.mu.Unlock()

	metrics.RecordSnapshotSwap()
	metrics.UpdateSnapshotCount(len(snapshots))
}

func (s *MemStore) snapshot() *snapshotSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Report returns classified rows for one metric, optionally filtered by
// exact, case-sensitive position match.
func (s *MemStore) Report(_ context.Context, metric, position string) ([]ReportRow, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	set := s.snapshot()
	rows := make([]ReportRow, 0, len(set.snapshots))
	for _, snap := range set.snapshots {
		if position != "" && snap.Position != position {
			continue
		}
		w := snap.Windows[metric]
		// Drop only when acute and chronic are both undefined; a row
		// missing one of the two is retained.
		if !w.Acute.Defined() && !w.Chronic.Defined() {
			continue
		}
		rows = append(rows, ReportRow{
			AthleteID: snap.AthleteID,
			Position:  snap.Position,
			Acute:     w.Acute,
			Chronic:   w.Chronic,
			ACWR:      w.ACWR,
			Risk:      s.classifier.Classify(w.ACWR),
		})
	}
	return rows, nil
}

// Athlete returns the full snapshot for one athlete.
func (s *MemStore) Athlete(_ context.Context, athleteID string) (model.Snapshot, error) {
	set := s.snapshot()
	i, ok := set.byID[athleteID]
	if !ok {
		return model.Snapshot{}, ErrNotFound
	}
	return set.snapshots[i], nil
}

// Positions returns the distinct non-empty positions, sorted.
func (s *MemStore) Positions(_ context.Context) []string {
	return s.snapshot().positions
}

// Count returns the number of athletes in the published set.
func (s *MemStore) Count(_ context.Context) int {
	return len(s.snapshot().snapshots)
}

// ComputedAt returns when the published set was computed.
func (s *MemStore) ComputedAt(_ context.Context) time.Time {
	return s.snapshot().computedAt
}

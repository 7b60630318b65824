package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/ratio"
	"github.com/ekrowl/acwr/pkg/metrics"
)

// annotateGroups computes rolling windows and ratios for every athlete group,
// fanning out over a bounded pool of workers. Athletes are independent, so
// the parallel result is identical to the serial one; output rows come back
// in the input's (athlete, date) order regardless of worker scheduling.
func (p *Pipeline) annotateGroups(ctx context.Context, groups [][]model.EnrichedRecord) ([]model.WindowedRecord, error) {
	workers := p.workerCount
	if workers > len(groups) {
		workers = len(groups)
	}
	if workers < 1 {
		workers = 1
	}
	metrics.UpdateWorkerCount(workers)

	type job struct {
		index int
		group []model.EnrichedRecord
	}

	jobs := make(chan job)
	results := make([][]model.WindowedRecord, len(groups))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				// Each index is written by exactly one worker.
				results[j.index] = ratio.Derive(p.estimator.Annotate(j.group))
			}
		}()
	}

	var cancelled error
feed:
	for i, g := range groups {
		select {
		case jobs <- job{index: i, group: g}:
		case <-ctx.Done():
			cancelled = fmt.Errorf("annotate cancelled: %w", ctx.Err())
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		metrics.RecordErrorByComponent("pipeline", "cancelled")
		return nil, cancelled
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	out := make([]model.WindowedRecord, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

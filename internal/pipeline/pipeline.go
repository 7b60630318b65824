// Package pipeline runs the batch computation that turns raw load and
// position tables into per-athlete ACWR snapshots.
//
// Stage order: join -> outlier bounding (folded per metric) -> rolling
// averages -> ratio derivation -> snapshot selection. Each stage fully
// consumes its input and hands a new table to the next; no shared mutable
// state survives a run.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/ekrowl/acwr/internal/domain/join"
	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/outlier"
	"github.com/ekrowl/acwr/internal/domain/rolling"
	"github.com/ekrowl/acwr/internal/domain/snapshot"
	"github.com/ekrowl/acwr/pkg/logger"
	"github.com/ekrowl/acwr/pkg/metrics"
)

// Pipeline computes ACWR snapshots from raw input tables.
type Pipeline struct {
	metricNames []string
	multiplier  float64
	estimator   *rolling.Estimator
	workerCount int
	log         logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithIQRMultiplier overrides the outlier bound multiplier.
func WithIQRMultiplier(m float64) Option {
	return func(p *Pipeline) {
		if m > 0 {
			p.multiplier = m
		}
	}
}

// WithWindows overrides the acute and chronic window sizes in rows.
func WithWindows(acute, chronic int) Option {
	return func(p *Pipeline) {
		if acute > 0 && chronic > 0 {
			p.estimator = rolling.New(p.metricNames,
				rolling.WithAcuteWindow(rolling.RowWindow(acute)),
				rolling.WithChronicWindow(rolling.RowWindow(chronic)),
			)
		}
	}
}

// WithWorkerCount sets how many goroutines annotate athlete groups.
func WithWorkerCount(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workerCount = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a Pipeline over the given metric columns. The metric order is
// the outlier bounding order.
func New(metricNames []string, opts ...Option) *Pipeline {
	p := &Pipeline{
		metricNames: metricNames,
		multiplier:  outlier.DefaultMultiplier,
		workerCount: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.estimator == nil {
		p.estimator = rolling.New(p.metricNames)
	}
	if p.log == nil {
		p.log = logger.Get().Named("pipeline")
	}

	return p
}

// Run executes one batch computation and returns the snapshot set. The only
// failure mode is context cancellation; numeric gaps become undefined values
// in the output, never errors.
func (p *Pipeline) Run(ctx context.Context, loads []model.LoadRecord, positions []model.PositionRecord) ([]model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline run cancelled: %w", err)
	}

	start := time.Now()

	enriched := join.Enrich(loads, positions)
	metrics.UpdateJoinedRows(len(enriched))
	p.log.Debug(ctx, "joined input tables",
		logger.Int("loadRows", len(loads)),
		logger.Int("athletes", len(positions)),
		logger.Int("enrichedRows", len(enriched)),
	)

	// Bounding is a fold over the metric list: each metric's quantiles see
	// only rows that survived the metrics before it.
	rows := enriched
	for _, metric := range p.metricNames {
		next := outlier.Bound(rows, metric, p.multiplier)
		dropped := len(rows) - len(next)
		metrics.RecordOutliersDropped(metric, dropped)
		if dropped > 0 {
			p.log.Debug(ctx, "dropped outlier rows",
				logger.String("metric", metric),
				logger.Int("dropped", dropped),
			)
		}
		rows = next
	}

	windowed, err := p.annotateGroups(ctx, join.GroupByAthlete(rows))
	if err != nil {
		metrics.RecordPipelineFailure()
		return nil, err
	}

	snapshots := snapshot.Latest(windowed)

	elapsed := time.Since(start)
	metrics.RecordPipelineRun(float64(elapsed.Milliseconds()), time.Now().Unix())
	p.log.Info(ctx, "pipeline run complete",
		logger.Int("rows", len(rows)),
		logger.Int("snapshots", len(snapshots)),
		logger.String("elapsed", elapsed.String()),
	)

	return snapshots, nil
}

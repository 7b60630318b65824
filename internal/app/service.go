// Package service provides the core business service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ekrowl/acwr/internal/adapters/repository"
	"github.com/ekrowl/acwr/internal/domain/model"
	"github.com/ekrowl/acwr/internal/domain/outlier"
	"github.com/ekrowl/acwr/internal/domain/ratio"
	"github.com/ekrowl/acwr/internal/domain/rolling"
	"github.com/ekrowl/acwr/internal/ingest"
	"github.com/ekrowl/acwr/internal/pipeline"
	"github.com/ekrowl/acwr/pkg/logger"
	"github.com/ekrowl/acwr/pkg/metrics"
)

// Service owns the batch pipeline and the published snapshot set.
type Service struct {
	mu sync.Mutex

	// Inputs
	loadLogPath   string
	positionsPath string
	athleteColumn string
	dateColumn    string

	// Pipeline configuration
	metricNames    []string
	defaultMetric  string
	acuteWindow    int
	chronicWindow  int
	iqrMultiplier  float64
	underThreshold float64
	overThreshold  float64
	workerCount    int
	maxReportRows  int

	// RefreshInterval re-runs the pipeline periodically; zero disables it.
	refreshInterval time.Duration

	// Components
	store      repository.Store
	pipe       *pipeline.Pipeline
	classifier *ratio.Classifier

	// State
	started bool
	stopCh  chan struct{}

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithInputs sets the load log and position registry paths.
func WithInputs(loadLogPath, positionsPath string) Option {
	return func(s *Service) {
		if loadLogPath != "" {
			s.loadLogPath = loadLogPath
		}
		if positionsPath != "" {
			s.positionsPath = positionsPath
		}
	}
}

// WithColumns sets the load-log identity column names.
func WithColumns(athleteColumn, dateColumn string) Option {
	return func(s *Service) {
		if athleteColumn != "" {
			s.athleteColumn = athleteColumn
		}
		if dateColumn != "" {
			s.dateColumn = dateColumn
		}
	}
}

// WithMetrics sets the metric columns (in bounding order) and the report
// fallback metric.
func WithMetrics(names []string, defaultMetric string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.metricNames = names
		}
		if defaultMetric != "" {
			s.defaultMetric = defaultMetric
		}
	}
}

// WithWindows sets the acute and chronic window sizes in rows.
func WithWindows(acute, chronic int) Option {
	return func(s *Service) {
		if acute > 0 && chronic >= acute {
			s.acuteWindow = acute
			s.chronicWindow = chronic
		}
	}
}

// WithIQRMultiplier sets the outlier bound multiplier.
func WithIQRMultiplier(m float64) Option {
	return func(s *Service) {
		if m > 0 {
			s.iqrMultiplier = m
		}
	}
}

// WithThresholds sets the under/over classification boundaries.
func WithThresholds(under, over float64) Option {
	return func(s *Service) {
		if under > 0 && over > under {
			s.underThreshold = under
			s.overThreshold = over
		}
	}
}

// WithWorkerCount sets the per-athlete computation workers.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithMaxReportRows caps the rows returned by report queries. Zero means
// unlimited.
func WithMaxReportRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxReportRows = n
		}
	}
}

// WithRefreshInterval enables periodic recomputes.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		loadLogPath:    "MasterWorkload.csv",
		positionsPath:  "positions.csv",
		athleteColumn:  "Player Name",
		dateColumn:     "Session Date",
		metricNames:    []string{"High Speed Running", "DSL"},
		acuteWindow:    rolling.DefaultAcuteWindow,
		chronicWindow:  rolling.DefaultChronicWindow,
		iqrMultiplier:  outlier.DefaultMultiplier,
		underThreshold: ratio.DefaultUnderThreshold,
		overThreshold:  ratio.DefaultOverThreshold,
		workerCount:    runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.defaultMetric == "" {
		s.defaultMetric = s.metricNames[0]
	}

	return s
}

// Start initializes components and runs the initial ingest and compute.
// A failing initial run is fatal: the service refuses to start with no
// published output.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.log == nil {
		s.log = logger.Get().Named("service")
	}

	s.log.Info(ctx, "starting workload service...")

	s.classifier = ratio.NewClassifier(
		ratio.WithThresholds(s.underThreshold, s.overThreshold),
	)
	s.store = repository.NewMemStore(
		repository.WithClassifier(s.classifier),
	)
	s.pipe = pipeline.New(s.metricNames,
		pipeline.WithWindows(s.acuteWindow, s.chronicWindow),
		pipeline.WithIQRMultiplier(s.iqrMultiplier),
		pipeline.WithWorkerCount(s.workerCount),
		pipeline.WithLogger(s.log.Named("pipeline")),
	)

	if err := s.refresh(ctx); err != nil {
		return fmt.Errorf("initial pipeline run failed: %w", err)
	}

	// A fresh channel per start so a stopped service can be started again
	// with its periodic refresh intact.
	s.stopCh = make(chan struct{})
	if s.refreshInterval > 0 {
		go s.refreshLoop(ctx, s.stopCh)
	}

	s.started = true
	s.log.Info(ctx, "workload service started",
		logger.Int("metrics", len(s.metricNames)),
		logger.Int("workers", s.workerCount),
		logger.String("loadLog", s.loadLogPath),
		logger.String("positions", s.positionsPath),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.stopCh != nil {
		select {
		case <-s.stopCh:
		default:
			close(s.stopCh)
		}
	}

	s.started = false
	s.log.Info(context.Background(), "workload service stopped")
}

// refreshLoop re-runs the pipeline on a timer until stopped. A failed
// periodic run keeps the previous snapshot set published.
func (s *Service) refreshLoop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.log.Error(ctx, "periodic refresh failed; keeping previous snapshot set", logger.Error(err))
			}
		}
	}
}

// refresh ingests both inputs, runs the pipeline and atomically swaps the
// published set. Any ingestion error aborts the run with nothing published.
func (s *Service) refresh(ctx context.Context) error {
	loads, err := ingest.LoadLog(s.loadLogPath, s.athleteColumn, s.dateColumn, s.metricNames)
	if err != nil {
		metrics.RecordPipelineFailure()
		metrics.RecordErrorByComponent("ingest", "load_log")
		return fmt.Errorf("ingest load log: %w", err)
	}
	metrics.RecordRowsIngested("load_log", len(loads))

	positions, err := ingest.Positions(s.positionsPath)
	if err != nil {
		metrics.RecordPipelineFailure()
		metrics.RecordErrorByComponent("ingest", "positions")
		return fmt.Errorf("ingest positions: %w", err)
	}
	metrics.RecordRowsIngested("positions", len(positions))

	snapshots, err := s.pipe.Run(ctx, loads, positions)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	s.store.Swap(ctx, snapshots, time.Now())
	return nil
}

// Refresh re-runs ingest and compute on demand.
func (s *Service) Refresh(ctx context.Context) error {
	return s.refresh(ctx)
}

// Report returns classified snapshot rows for one metric and optional
// position filter.
func (s *Service) Report(ctx context.Context, metric, position string) ([]repository.ReportRow, error) {
	rows, err := s.store.Report(ctx, metric, position)
	if err != nil {
		return nil, err
	}
	if s.maxReportRows > 0 && len(rows) > s.maxReportRows {
		rows = rows[:s.maxReportRows]
	}
	return rows, nil
}

// Athlete returns the full snapshot for one athlete.
func (s *Service) Athlete(ctx context.Context, athleteID string) (model.Snapshot, error) {
	return s.store.Athlete(ctx, athleteID)
}

// Positions lists the distinct positions in the published set.
func (s *Service) Positions(ctx context.Context) []string {
	return s.store.Positions(ctx)
}

// MetricNames lists the configured metric columns.
func (s *Service) MetricNames(_ context.Context) []string {
	return s.metricNames
}

// DefaultMetric is the fallback for unrecognized metric selections.
func (s *Service) DefaultMetric(_ context.Context) string {
	return s.defaultMetric
}

// Classify labels an ACWR value.
func (s *Service) Classify(_ context.Context, acwr model.Value) ratio.Risk {
	return s.classifier.Classify(acwr)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()

	stats := map[string]interface{}{
		"metrics":       s.metricNames,
		"defaultMetric": s.defaultMetric,
		"acuteWindow":   s.acuteWindow,
		"chronicWindow": s.chronicWindow,
		"workerCount":   s.workerCount,
	}
	if s.store != nil {
		stats["athletes"] = s.store.Count(ctx)
		stats["positions"] = s.store.Positions(ctx)
		if at := s.store.ComputedAt(ctx); !at.IsZero() {
			stats["computedAt"] = at.Format(time.RFC3339)
		}
	}
	return stats
}

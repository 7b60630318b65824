// Package sampledata generates synthetic roster and load-log CSV files for
// local runs and manual verification.
package sampledata

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/ekrowl/acwr/internal/domain/model"
)

// Default generation constants.
const (
	defaultAthleteCount = 25
	defaultDayCount     = 60
	defaultSeed         = 42
	defaultSpikeRate    = 0.02
	missingRate         = 0.05
	restRate            = 0.15
	spikeFactor         = 8.0
	filePermission      = 0o644
)

// Positions assigned round-robin to generated athletes. The empty entry
// produces the occasional athlete with a null position.
var positionLabels = []string{ //nolint:gochecknoglobals // static roster bands
	"Forward", "Midfielder", "Defender", "Goalkeeper", "",
}

// Band profiles give athletes distinguishable load baselines so reports show
// a spread of under/normal/over classifications.
var loadBands = []struct { //nolint:gochecknoglobals // static roster bands
	base  float64
	swing float64
}{
	{base: 200, swing: 60},  // low-volume
	{base: 450, swing: 120}, // typical
	{base: 700, swing: 150}, // high-volume
}

// Generator produces a synthetic roster and matching load log.
type Generator struct {
	athleteCount int
	dayCount     int
	metricNames  []string
	spikeRate    float64
	rng          *rand.Rand
	start        time.Time
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithAthleteCount sets the roster size.
func WithAthleteCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.athleteCount = n
		}
	}
}

// WithDayCount sets how many daily sessions each athlete gets.
func WithDayCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.dayCount = n
		}
	}
}

// WithMetrics sets the generated metric columns.
func WithMetrics(names []string) Option {
	return func(g *Generator) {
		if len(names) > 0 {
			g.metricNames = names
		}
	}
}

// WithSeed makes the output reproducible for a given seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data only
	}
}

// WithSpikeRate sets the probability of an injected unrealistic spike.
func WithSpikeRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate < 1 {
			g.spikeRate = rate
		}
	}
}

// New creates a Generator with defaults.
func New(opts ...Option) *Generator {
	g := &Generator{
		athleteCount: defaultAthleteCount,
		dayCount:     defaultDayCount,
		metricNames:  []string{"High Speed Running", "DSL"},
		spikeRate:    defaultSpikeRate,
		rng:          rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // synthetic data only
		start:        time.Now().AddDate(0, 0, -defaultDayCount),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Roster returns the synthetic position registry.
func (g *Generator) Roster() []model.PositionRecord {
	roster := make([]model.PositionRecord, g.athleteCount)
	for i := range roster {
		roster[i] = model.PositionRecord{
			AthleteID: "athlete-" + uuid.NewString()[:8],
			Position:  positionLabels[i%len(positionLabels)],
		}
	}
	return roster
}

// LoadLog returns synthetic sessions for the roster: near-daily cadence with
// rest days, occasional missing metric cells, and rare injected spikes that
// the outlier bounder should remove.
func (g *Generator) LoadLog(roster []model.PositionRecord) []model.LoadRecord {
	var records []model.LoadRecord
	for i, athlete := range roster {
		band := loadBands[i%len(loadBands)]
		for day := 0; day < g.dayCount; day++ {
			if g.rng.Float64() < restRate {
				continue
			}
			metrics := make(map[string]model.Value, len(g.metricNames))
			for _, name := range g.metricNames {
				switch {
				case g.rng.Float64() < missingRate:
					metrics[name] = model.None()
				case g.rng.Float64() < g.spikeRate:
					metrics[name] = model.Some(band.base * spikeFactor)
				default:
					metrics[name] = model.Some(band.base + (g.rng.Float64()*2-1)*band.swing)
				}
			}
			records = append(records, model.LoadRecord{
				AthleteID:   athlete.AthleteID,
				SessionDate: g.start.AddDate(0, 0, day),
				Metrics:     metrics,
			})
		}
	}
	return records
}

// positionRow mirrors the position registry schema written to disk.
type positionRow struct {
	AthleteID string `csv:"Player Name"`
	Position  string `csv:"Position"`
}

// WritePositions writes the roster CSV.
func (g *Generator) WritePositions(path string, roster []model.PositionRecord) error {
	rows := make([]positionRow, len(roster))
	for i, r := range roster {
		rows[i] = positionRow{AthleteID: r.AthleteID, Position: r.Position}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // flushed below

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteLoadLog writes the load log CSV with the configured metric columns.
func (g *Generator) WriteLoadLog(path, athleteColumn, dateColumn string, records []model.LoadRecord) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // flushed below

	w := csv.NewWriter(f)
	header := append([]string{athleteColumn, dateColumn}, g.metricNames...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, rec := range records {
		row := []string{rec.AthleteID, rec.SessionDate.Format(time.DateOnly)}
		for _, name := range g.metricNames {
			if v, ok := rec.Metrics[name].Float64(); ok {
				row = append(row, strconv.FormatFloat(v, 'f', 1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

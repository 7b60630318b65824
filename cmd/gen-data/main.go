package main

import (
	"flag"
	"os"
	"strings"

	"github.com/ekrowl/acwr/internal/sampledata"
)

// Default configuration constants.
const (
	defaultAthletes  = 25
	defaultDays      = 60
	defaultSeed      = 42
	defaultSpikeRate = 0.02
)

func main() {
	var (
		athletes      = flag.Int("athletes", defaultAthletes, "Number of athletes in the roster")
		days          = flag.Int("days", defaultDays, "Number of days of sessions per athlete")
		seed          = flag.Int64("seed", defaultSeed, "Random seed for reproducible output")
		spikeRate     = flag.Float64("spike-rate", defaultSpikeRate, "Probability of an injected unrealistic spike per cell")
		metrics       = flag.String("metrics", "High Speed Running,DSL", "Comma-separated metric column names")
		loadPath      = flag.String("load-log", "MasterWorkload.csv", "Output path for the load log CSV")
		positionsPath = flag.String("positions", "positions.csv", "Output path for the positions CSV")
		athleteColumn = flag.String("athlete-column", "Player Name", "Athlete column name in the load log")
		dateColumn    = flag.String("date-column", "Session Date", "Date column name in the load log")
	)
	flag.Parse()

	metricNames := strings.Split(*metrics, ",")
	for i := range metricNames {
		metricNames[i] = strings.TrimSpace(metricNames[i])
	}

	gen := sampledata.New(
		sampledata.WithAthleteCount(*athletes),
		sampledata.WithDayCount(*days),
		sampledata.WithSeed(*seed),
		sampledata.WithSpikeRate(*spikeRate),
		sampledata.WithMetrics(metricNames),
	)

	roster := gen.Roster()
	if err := gen.WritePositions(*positionsPath, roster); err != nil {
		os.Stderr.WriteString("generate positions: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := gen.WriteLoadLog(*loadPath, *athleteColumn, *dateColumn, gen.LoadLog(roster)); err != nil {
		os.Stderr.WriteString("generate load log: " + err.Error() + "\n")
		os.Exit(1)
	}
}

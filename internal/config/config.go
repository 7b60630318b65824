// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers file and env on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LoadLogPath and PositionsPath point at the input CSV files.
	LoadLogPath   string `koanf:"load_log_path"`
	PositionsPath string `koanf:"positions_path"`

	// AthleteColumn and DateColumn name the identity columns of the load log.
	AthleteColumn string `koanf:"athlete_column"`
	DateColumn    string `koanf:"date_column"`

	// Metrics lists the load-log metric columns the pipeline computes over,
	// in bounding order.
	Metrics []string `koanf:"metrics"`

	// DefaultMetric is used when a report request names an unknown metric.
	// Empty means the first entry of Metrics.
	DefaultMetric string `koanf:"default_metric"`

	// AcuteWindow and ChronicWindow are trailing window sizes in rows.
	AcuteWindow   int `koanf:"acute_window"`
	ChronicWindow int `koanf:"chronic_window"`

	// IQRMultiplier scales the interquartile range for the outlier bound.
	IQRMultiplier float64 `koanf:"iqr_multiplier"`

	// UnderThreshold and OverThreshold classify ACWR values.
	UnderThreshold float64 `koanf:"under_threshold"`
	OverThreshold  float64 `koanf:"over_threshold"`

	// WorkerCount sets the per-athlete computation workers.
	WorkerCount int `koanf:"worker_count"`

	// MaxReportRows caps the rows returned by a report query. Zero means
	// unlimited.
	MaxReportRows int `koanf:"max_report_rows"`

	// RefreshIntervalSeconds re-runs the pipeline on a timer. Zero disables
	// periodic refresh; the initial run still happens at startup.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9090",
		LoadLogPath:            "MasterWorkload.csv",
		PositionsPath:          "positions.csv",
		AthleteColumn:          "Player Name",
		DateColumn:             "Session Date",
		Metrics:                []string{"High Speed Running", "DSL"},
		AcuteWindow:            7,
		ChronicWindow:          28,
		IQRMultiplier:          2.5,
		UnderThreshold:         0.8,
		OverThreshold:          1.5,
		WorkerCount:            runtime.NumCPU(),
		RefreshIntervalSeconds: 0,
	}
}

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ACWR_CONFIG is set
//  3. env (prefix ACWR_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ACWR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ACWR_ADDR, ACWR_ACUTE_WINDOW, ...
	// Keys map to the koanf tags on the struct with underscores preserved.
	envProvider := env.Provider("ACWR_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "acwr_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LoadLogPath == "":
		return fmt.Errorf("%w: load_log_path must not be empty", ErrInvalidConfig)
	case c.PositionsPath == "":
		return fmt.Errorf("%w: positions_path must not be empty", ErrInvalidConfig)
	case len(c.Metrics) == 0:
		return fmt.Errorf("%w: at least one metric column is required", ErrInvalidConfig)
	case c.AcuteWindow < 1 || c.ChronicWindow < 1:
		return fmt.Errorf("%w: window sizes must be positive", ErrInvalidConfig)
	case c.AcuteWindow > c.ChronicWindow:
		return fmt.Errorf("%w: acute_window must not exceed chronic_window", ErrInvalidConfig)
	case c.IQRMultiplier <= 0:
		return fmt.Errorf("%w: iqr_multiplier must be positive", ErrInvalidConfig)
	case c.UnderThreshold <= 0 || c.OverThreshold <= c.UnderThreshold:
		return fmt.Errorf("%w: thresholds must satisfy 0 < under < over", ErrInvalidConfig)
	case c.RefreshIntervalSeconds < 0:
		return fmt.Errorf("%w: refresh_interval_seconds must not be negative", ErrInvalidConfig)
	case c.MaxReportRows < 0:
		return fmt.Errorf("%w: max_report_rows must not be negative", ErrInvalidConfig)
	}

	if c.DefaultMetric == "" {
		c.DefaultMetric = c.Metrics[0]
	}
	if !c.HasMetric(c.DefaultMetric) {
		return fmt.Errorf("%w: default_metric %q is not in metrics", ErrInvalidConfig, c.DefaultMetric)
	}
	return nil
}

// HasMetric reports whether name is a configured metric column.
func (c *Config) HasMetric(name string) bool {
	for _, m := range c.Metrics {
		if m == name {
			return true
		}
	}
	return false
}

// Package ingest loads the raw input tables from CSV files.
//
// Any ingestion problem (unreadable file, missing required column, malformed
// row, unparsable date) is fatal for the whole pipeline run; no partial
// tables are produced. Per-value gaps are not errors: an empty metric cell
// becomes an undefined value and flows through the pipeline as such.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/ekrowl/acwr/internal/domain/model"
)

// Accepted session date layouts, tried in order.
var dateLayouts = []string{ //nolint:gochecknoglobals // static parse table
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	time.RFC3339,
}

// LoadLog reads the training load log. athleteCol and dateCol name the
// identity columns; metricCols name the numeric columns to ingest. Column
// names outside those sets are ignored.
func LoadLog(path, athleteCol, dateCol string, metricCols []string) ([]model.LoadRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %w", ErrMalformedInput, path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	required := append([]string{athleteCol, dateCol}, metricCols...)
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s has no column %q", ErrMissingColumn, path, name)
		}
	}

	var records []model.LoadRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrMalformedInput, path, line, err)
		}

		date, err := parseDate(row[index[dateCol]])
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrMalformedInput, path, line, err)
		}

		metrics := make(map[string]model.Value, len(metricCols))
		for _, name := range metricCols {
			v, err := parseValue(row[index[name]])
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d column %q: %w", ErrMalformedInput, path, line, name, err)
			}
			metrics[name] = v
		}

		records = append(records, model.LoadRecord{
			AthleteID:   strings.TrimSpace(row[index[athleteCol]]),
			SessionDate: date,
			Metrics:     metrics,
		})
	}

	return records, nil
}

// positionRow mirrors the position registry schema.
type positionRow struct {
	AthleteID string `csv:"Player Name"`
	Position  string `csv:"Position"`
}

// Positions reads the position registry. The file must carry "Player Name"
// and "Position" columns; an empty position cell is a null position.
func Positions(path string) ([]model.PositionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var rows []positionRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedInput, path, err)
	}

	records := make([]model.PositionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.PositionRecord{
			AthleteID: strings.TrimSpace(row.AthleteID),
			Position:  strings.TrimSpace(row.Position),
		})
	}
	return records, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable session date %q", raw)
}

// parseValue converts one metric cell. Empty and NaN-marked cells are
// missing values, not errors.
func parseValue(raw string) (model.Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") || strings.EqualFold(raw, "na") {
		return model.None(), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return model.None(), fmt.Errorf("non-numeric value %q", raw)
	}
	return model.Some(f), nil
}

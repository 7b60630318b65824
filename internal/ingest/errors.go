package ingest

import (
	"errors"
)

// Sentinel kinds for ingestion errors. All are fatal for a pipeline run.
var (
	ErrOpenInput      = errors.New("open input failed")
	ErrMissingColumn  = errors.New("missing required column")
	ErrMalformedInput = errors.New("malformed input")
)

package engine

import "errors"

// Load-time failures halt the pipeline; callers surface them directly.
// Per-row coercion failures never reach here: the loader drops the row
// and counts it on the Dataset instead.
var (
	ErrFileNotFound    = errors.New("dataset file not found")
	ErrMissingColumn   = errors.New("required column missing")
	ErrCountryNotFound = errors.New("country not found in dataset")
	ErrUnknownMetric   = errors.New("unknown metric")
)

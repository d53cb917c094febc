package shared

import "errors"

// ErrData indicates time series data that could not be parsed or validated:
// a malformed date, a negative price or volume, or duplicate trading days.
// It aborts the pipeline for the affected table immediately.
var ErrData = errors.New("invalid time series data")

// ErrConfig indicates chart configuration referencing data that does not
// exist, such as a tooltip or layer binding naming a field absent from the
// bound source. It surfaces when the configuration is attached or rendered.
var ErrConfig = errors.New("invalid chart configuration")

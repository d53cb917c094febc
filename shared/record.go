package shared

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the format layout for parsing daily record dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the format layout for parsing intraday record dates.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ParseDate parses a record date from its string form. Both daily and
// intraday layouts are accepted; anything else fails with a data error
// rather than producing a zero date.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err == nil {
		return date, nil
	}

	date, err = time.Parse(DateTimeLayout, value)
	if err == nil {
		return date, nil
	}

	return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrData, value)
}

// Record represents a unit time series record for a symbol, one per
// trading day.
type Record struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64
	AdjClose float64
}

// Validate asserts the record has a usable date and non-negative fields.
func (r *Record) Validate() error {
	var errs error

	if r.Date.IsZero() {
		errs = errors.Join(errs, fmt.Errorf("record date cannot be the zero time"))
	}
	if r.Open < 0 {
		errs = errors.Join(errs, fmt.Errorf("open price cannot be negative: %f", r.Open))
	}
	if r.High < 0 {
		errs = errors.Join(errs, fmt.Errorf("high price cannot be negative: %f", r.High))
	}
	if r.Low < 0 {
		errs = errors.Join(errs, fmt.Errorf("low price cannot be negative: %f", r.Low))
	}
	if r.Close < 0 {
		errs = errors.Join(errs, fmt.Errorf("close price cannot be negative: %f", r.Close))
	}
	if r.Volume < 0 {
		errs = errors.Join(errs, fmt.Errorf("volume cannot be negative: %d", r.Volume))
	}
	if r.AdjClose < 0 {
		errs = errors.Join(errs, fmt.Errorf("adjusted close cannot be negative: %f", r.AdjClose))
	}

	if errs != nil {
		return fmt.Errorf("%w: %v", ErrData, errs)
	}

	return nil
}

// FieldValue returns the numeric value of the provided field. Dates are
// expressed as unix milliseconds, the unit chart collaborators expect.
func (r *Record) FieldValue(field Field) (float64, error) {
	switch field {
	case FieldDate:
		return float64(r.Date.UnixMilli()), nil
	case FieldOpen:
		return r.Open, nil
	case FieldHigh:
		return r.High, nil
	case FieldLow:
		return r.Low, nil
	case FieldClose:
		return r.Close, nil
	case FieldVolume:
		return float64(r.Volume), nil
	case FieldAdjClose:
		return r.AdjClose, nil
	default:
		return 0, fmt.Errorf("%w: record has no field %q", ErrConfig, field.String())
	}
}

package shared

import (
	"fmt"
	"slices"
	"time"
)

// Table represents an ordered time series for a single symbol, one record
// per trading day, ascending by date. Tables are loaded once per session,
// normalized once and treated as immutable afterwards.
type Table struct {
	Symbol  string
	Records []Record
}

// NewTable initializes a new time series table.
func NewTable(symbol string, records []Record) *Table {
	return &Table{
		Symbol:  symbol,
		Records: records,
	}
}

// Normalize validates every record, sorts the table ascending by date and
// rejects duplicate trading days. Normalizing an already normalized table
// is a no-op, so the operation is idempotent.
func (t *Table) Normalize() error {
	if len(t.Records) == 0 {
		return fmt.Errorf("%w: table %s has no records", ErrData, t.Symbol)
	}

	for idx := range t.Records {
		err := t.Records[idx].Validate()
		if err != nil {
			return fmt.Errorf("validating %s record %d: %w", t.Symbol, idx, err)
		}
	}

	slices.SortStableFunc(t.Records, func(a, b Record) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})

	for idx := 1; idx < len(t.Records); idx++ {
		if t.Records[idx].Date.Equal(t.Records[idx-1].Date) {
			return fmt.Errorf("%w: table %s has duplicate records for %s",
				ErrData, t.Symbol, t.Records[idx].Date.Format(DateLayout))
		}
	}

	return nil
}

// Span returns the first and last record dates of the table.
func (t *Table) Span() (time.Time, time.Time) {
	if len(t.Records) == 0 {
		return time.Time{}, time.Time{}
	}

	return t.Records[0].Date, t.Records[len(t.Records)-1].Date
}

// Dates returns the record dates of the table in order.
func (t *Table) Dates() []time.Time {
	dates := make([]time.Time, len(t.Records))
	for idx := range t.Records {
		dates[idx] = t.Records[idx].Date
	}

	return dates
}

// Column returns the numeric values of the provided field in record order.
func (t *Table) Column(field Field) ([]float64, error) {
	values := make([]float64, len(t.Records))
	for idx := range t.Records {
		value, err := t.Records[idx].FieldValue(field)
		if err != nil {
			return nil, err
		}

		values[idx] = value
	}

	return values, nil
}

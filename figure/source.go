package figure

import (
	"fmt"
	"time"

	"github.com/dnldd/tickplot/shared"
)

// Source represents a data source wrapper, exposing a normalized table's
// columns to draw calls by field name.
type Source struct {
	symbol  string
	dates   []time.Time
	columns map[shared.Field][]float64
}

// NewSource initializes a data source from the provided table. The table is
// normalized first, so handing an unparseable or disordered table to a draw
// call fails here with a data error.
func NewSource(table *shared.Table) (*Source, error) {
	err := table.Normalize()
	if err != nil {
		return nil, fmt.Errorf("normalizing %s table: %w", table.Symbol, err)
	}

	columns := make(map[shared.Field][]float64, len(shared.Fields()))
	for _, field := range shared.Fields() {
		column, err := table.Column(field)
		if err != nil {
			return nil, fmt.Errorf("fetching %s column for %s: %w", field.String(), table.Symbol, err)
		}

		columns[field] = column
	}

	return &Source{
		symbol:  table.Symbol,
		dates:   table.Dates(),
		columns: columns,
	}, nil
}

// NewDerivedSource initializes a data source from a computed overlay series,
// carrying only a date column and the provided field column.
func NewDerivedSource(symbol string, field shared.Field, dates []time.Time, values []float64) (*Source, error) {
	if field == shared.FieldDate {
		return nil, fmt.Errorf("%w: derived source for %s cannot bind the date field",
			shared.ErrConfig, symbol)
	}
	if len(dates) != len(values) {
		return nil, fmt.Errorf("%w: derived source for %s has %d dates and %d values",
			shared.ErrData, symbol, len(dates), len(values))
	}

	millis := make([]float64, len(dates))
	for idx := range dates {
		millis[idx] = float64(dates[idx].UnixMilli())
	}

	return &Source{
		symbol: symbol,
		dates:  dates,
		columns: map[shared.Field][]float64{
			shared.FieldDate: millis,
			field:            values,
		},
	}, nil
}

// Symbol returns the symbol of the wrapped table.
func (s *Source) Symbol() string {
	return s.symbol
}

// Len returns the number of rows exposed by the source.
func (s *Source) Len() int {
	return len(s.dates)
}

// Dates returns the source dates in ascending order.
func (s *Source) Dates() []time.Time {
	return s.dates
}

// HasField asserts whether the source exposes the provided field.
func (s *Source) HasField(field shared.Field) bool {
	_, ok := s.columns[field]
	return ok
}

// Fields returns the fields exposed by the source in canonical order.
func (s *Source) Fields() []shared.Field {
	fields := make([]shared.Field, 0, len(s.columns))
	for _, field := range shared.Fields() {
		if s.HasField(field) {
			fields = append(fields, field)
		}
	}

	return fields
}

// Column returns the values of the provided field. Referencing a field the
// source does not expose is a configuration fault.
func (s *Source) Column(field shared.Field) ([]float64, error) {
	column, ok := s.columns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s column", shared.ErrConfig, s.symbol, field.String())
	}

	return column, nil
}

// Project resolves an (x, y) field pair into aligned date and value slices
// for a line draw call. Only the date field can drive the x axis.
func (s *Source) Project(x, y shared.Field) ([]time.Time, []float64, error) {
	if x != shared.FieldDate {
		return nil, nil, fmt.Errorf("%w: %s cannot drive the x axis of a time series layer",
			shared.ErrConfig, x.String())
	}

	values, err := s.Column(y)
	if err != nil {
		return nil, nil, err
	}

	return s.dates, values, nil
}

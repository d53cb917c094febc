package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dnldd/tickplot/shared"
)

// requiredFields are the columns a table payload must carry. The adjusted
// close column is optional and falls back to the close price when absent.
var requiredFields = []shared.Field{
	shared.FieldDate,
	shared.FieldOpen,
	shared.FieldHigh,
	shared.FieldLow,
	shared.FieldClose,
	shared.FieldVolume,
}

// ParseCSV parses a time series table from CSV data with a header row.
// Unknown header columns are ignored; missing required columns and
// unparseable cells fail with a data error.
func ParseCSV(r io.Reader, symbol string) (*shared.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s csv header: %v", shared.ErrData, symbol, err)
	}

	columns := make(map[shared.Field]int, len(header))
	for idx := range header {
		field, err := shared.ParseField(header[idx])
		if err != nil {
			// Extra columns in source data are not a configuration fault.
			continue
		}

		columns[field] = idx
	}

	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("%w: %s csv is missing the %s column",
				shared.ErrData, symbol, field.String())
		}
	}

	var records []shared.Record
	for row := 1; ; row++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s csv row %d: %v", shared.ErrData, symbol, row, err)
		}

		record, err := parseCSVRecord(cells, columns)
		if err != nil {
			return nil, fmt.Errorf("parsing %s csv row %d: %w", symbol, row, err)
		}

		records = append(records, record)
	}

	return shared.NewTable(symbol, records), nil
}

// parseCSVRecord converts one csv row into a record using the header
// column mapping.
func parseCSVRecord(cells []string, columns map[shared.Field]int) (shared.Record, error) {
	var record shared.Record

	date, err := shared.ParseDate(cells[columns[shared.FieldDate]])
	if err != nil {
		return shared.Record{}, err
	}
	record.Date = date

	prices := []struct {
		field shared.Field
		value *float64
	}{
		{shared.FieldOpen, &record.Open},
		{shared.FieldHigh, &record.High},
		{shared.FieldLow, &record.Low},
		{shared.FieldClose, &record.Close},
	}
	for _, price := range prices {
		parsed, err := strconv.ParseFloat(cells[columns[price.field]], 64)
		if err != nil {
			return shared.Record{}, fmt.Errorf("%w: unparseable %s %q",
				shared.ErrData, price.field.String(), cells[columns[price.field]])
		}

		*price.value = parsed
	}

	volume, err := strconv.ParseInt(cells[columns[shared.FieldVolume]], 10, 64)
	if err != nil {
		return shared.Record{}, fmt.Errorf("%w: unparseable volume %q",
			shared.ErrData, cells[columns[shared.FieldVolume]])
	}
	record.Volume = volume

	idx, ok := columns[shared.FieldAdjClose]
	switch ok {
	case true:
		adjClose, err := strconv.ParseFloat(cells[idx], 64)
		if err != nil {
			return shared.Record{}, fmt.Errorf("%w: unparseable adj_close %q",
				shared.ErrData, cells[idx])
		}

		record.AdjClose = adjClose
	default:
		record.AdjClose = record.Close
	}

	return record, nil
}

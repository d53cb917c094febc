package dataset

import (
	"fmt"

	"github.com/dnldd/tickplot/shared"
	"github.com/tidwall/gjson"
)

// ParseJSON parses a time series table from a JSON array of record objects.
func ParseJSON(data []byte, symbol string) (*shared.Table, error) {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: %s json payload is not an array", shared.ErrData, symbol)
	}

	rows := parsed.Array()
	records := make([]shared.Record, 0, len(rows))

	for idx := range rows {
		record, err := parseJSONRecord(rows[idx])
		if err != nil {
			return nil, fmt.Errorf("parsing %s json record %d: %w", symbol, idx, err)
		}

		records = append(records, record)
	}

	return shared.NewTable(symbol, records), nil
}

// parseJSONRecord converts one json record object into a record.
func parseJSONRecord(row gjson.Result) (shared.Record, error) {
	for _, field := range requiredFields {
		if !row.Get(field.String()).Exists() {
			return shared.Record{}, fmt.Errorf("%w: record is missing the %s key",
				shared.ErrData, field.String())
		}
	}

	var record shared.Record

	date, err := shared.ParseDate(row.Get("date").String())
	if err != nil {
		return shared.Record{}, err
	}

	record.Date = date
	record.Open = row.Get("open").Float()
	record.High = row.Get("high").Float()
	record.Low = row.Get("low").Float()
	record.Close = row.Get("close").Float()
	record.Volume = row.Get("volume").Int()

	adjClose := row.Get("adj_close")
	switch adjClose.Exists() {
	case true:
		record.AdjClose = adjClose.Float()
	default:
		record.AdjClose = record.Close
	}

	return record, nil
}

package indicator

import (
	"fmt"
	"time"

	"github.com/dnldd/tickplot/shared"
)

// SMA computes the simple moving average of the provided field over a
// table, returning dates and averages aligned from the first full window.
func SMA(table *shared.Table, field shared.Field, window int) ([]time.Time, []float64, error) {
	if window <= 0 {
		return nil, nil, fmt.Errorf("%w: sma window must be positive, got %d",
			shared.ErrConfig, window)
	}
	if field == shared.FieldDate {
		return nil, nil, fmt.Errorf("%w: sma cannot average the date field", shared.ErrConfig)
	}

	column, err := table.Column(field)
	if err != nil {
		return nil, nil, err
	}
	if len(column) < window {
		return nil, nil, fmt.Errorf("%w: sma(%d) over %s needs at least %d records, got %d",
			shared.ErrData, window, table.Symbol, window, len(column))
	}

	averages := make([]float64, 0, len(column)-window+1)
	var sum float64
	for idx := range column {
		sum += column[idx]
		if idx >= window {
			sum -= column[idx-window]
		}
		if idx >= window-1 {
			averages = append(averages, sum/float64(window))
		}
	}

	return table.Dates()[window-1:], averages, nil
}

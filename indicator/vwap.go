package indicator

import (
	"fmt"
	"time"

	"github.com/dnldd/tickplot/shared"
)

// VWAP computes the volume weighted average price series for a table,
// cumulative from the first record. The typical price of a record is the
// mean of its high, low and close.
func VWAP(table *shared.Table) ([]time.Time, []float64, error) {
	if table == nil || len(table.Records) == 0 {
		return nil, nil, fmt.Errorf("%w: vwap needs at least one record", shared.ErrData)
	}

	values := make([]float64, 0, len(table.Records))
	var typicalPriceVolume, volume float64
	for idx := range table.Records {
		record := &table.Records[idx]

		typicalPrice := (record.High + record.Low + record.Close) / 3
		typicalPriceVolume += typicalPrice * float64(record.Volume)
		volume += float64(record.Volume)

		// A run of zero volume records has no weighted price yet.
		if volume == 0 {
			values = append(values, 0)
			continue
		}

		values = append(values, typicalPriceVolume/volume)
	}

	return table.Dates(), values, nil
}

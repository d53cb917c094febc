package shared

import (
	"context"
)

// TableFetcher defines the requirements for fetching a symbol's time series
// table from an external dataset source.
type TableFetcher interface {
	// FetchTable fetches the time series table for the provided symbol.
	FetchTable(ctx context.Context, symbol string) (*Table, error)
}

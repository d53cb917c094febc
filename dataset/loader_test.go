package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dnldd/tickplot/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

type fetcherMock struct {
	table *shared.Table
	err   error
	calls int
}

// Ensure the mock implements the TableFetcher interface.
var _ shared.TableFetcher = (*fetcherMock)(nil)

func (m *fetcherMock) FetchTable(ctx context.Context, symbol string) (*shared.Table, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	return m.table, nil
}

func mockRecord(date string, open float64) shared.Record {
	day, _ := time.Parse(shared.DateLayout, date)
	return shared.Record{
		Date:     day,
		Open:     open,
		High:     open + 2,
		Low:      open - 2,
		Close:    open + 1,
		Volume:   1000,
		AdjClose: open + 1,
	}
}

func TestLoaderConfigValidate(t *testing.T) {
	logger := zerolog.New(nil)

	tests := []struct {
		name        string
		modify      func(cfg *LoaderConfig)
		wantErr     bool
		errContains []string
	}{
		{
			name:    "valid config with data directory",
			modify:  func(cfg *LoaderConfig) {},
			wantErr: false,
		},
		{
			name: "valid config with fetcher",
			modify: func(cfg *LoaderConfig) {
				cfg.DataDir = ""
				cfg.Fetcher = &fetcherMock{}
			},
			wantErr: false,
		},
		{
			name: "missing data directory and fetcher",
			modify: func(cfg *LoaderConfig) {
				cfg.DataDir = ""
				cfg.Fetcher = nil
			},
			wantErr:     true,
			errContains: []string{"a data directory or a fetcher is required"},
		},
		{
			name: "missing logger",
			modify: func(cfg *LoaderConfig) {
				cfg.Logger = nil
			},
			wantErr:     true,
			errContains: []string{"logger cannot be nil"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := &LoaderConfig{
				DataDir: "testdata",
				Logger:  &logger,
			}

			test.modify(cfg)

			err := cfg.Validate()
			if test.wantErr {
				assert.Error(t, err)
				for _, substr := range test.errContains {
					assert.True(t, strings.Contains(err.Error(), substr))
				}
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestLoadTableLocal(t *testing.T) {
	logger := zerolog.New(nil)
	mock := &fetcherMock{}
	loader, err := NewLoader(&LoaderConfig{
		DataDir: "testdata",
		Fetcher: mock,
		Logger:  &logger,
	})
	assert.NoError(t, err)

	ctx := context.Background()

	// Ensure csv tables resolve from the data directory.
	table, err := loader.LoadTable(ctx, "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, table.Symbol, "AAPL")
	assert.Equal(t, len(table.Records), 5)

	// Ensure json tables resolve from the data directory.
	table, err = loader.LoadTable(ctx, "MSFT")
	assert.NoError(t, err)
	assert.Equal(t, table.Symbol, "MSFT")
	assert.Equal(t, len(table.Records), 5)

	// Ensure loaded tables are normalized in ascending date order.
	for idx := range table.Records[1:] {
		assert.True(t, table.Records[idx].Date.Before(table.Records[idx+1].Date))
	}

	assert.Equal(t, mock.calls, 0)
}

func TestLoadTableFetcherFallback(t *testing.T) {
	logger := zerolog.New(nil)
	mock := &fetcherMock{
		table: shared.NewTable("GOOG", []shared.Record{
			mockRecord("2000-03-03", 210),
			mockRecord("2000-03-01", 200),
			mockRecord("2000-03-02", 205),
		}),
	}

	loader, err := NewLoader(&LoaderConfig{
		DataDir: t.TempDir(),
		Fetcher: mock,
		Logger:  &logger,
	})
	assert.NoError(t, err)

	table, err := loader.LoadTable(context.Background(), "GOOG")
	assert.NoError(t, err)
	assert.Equal(t, mock.calls, 1)

	// Ensure the fetched table is normalized before use.
	assert.Equal(t, table.Records[0].Date.Format(shared.DateLayout), "2000-03-01")
	assert.Equal(t, table.Records[2].Date.Format(shared.DateLayout), "2000-03-03")
}

func TestLoadTableErrors(t *testing.T) {
	logger := zerolog.New(nil)
	ctx := context.Background()

	// Ensure a missing local table with no fetcher fails.
	loader, err := NewLoader(&LoaderConfig{
		DataDir: t.TempDir(),
		Logger:  &logger,
	})
	assert.NoError(t, err)

	_, err = loader.LoadTable(ctx, "GOOG")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no fetcher configured"))

	// Ensure fetcher errors are surfaced.
	fetchErr := errors.New("connection reset")
	loader, err = NewLoader(&LoaderConfig{
		Fetcher: &fetcherMock{err: fetchErr},
		Logger:  &logger,
	})
	assert.NoError(t, err)

	_, err = loader.LoadTable(ctx, "GOOG")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, fetchErr))

	// Ensure tables that fail normalization are rejected.
	loader, err = NewLoader(&LoaderConfig{
		Fetcher: &fetcherMock{
			table: shared.NewTable("GOOG", []shared.Record{
				mockRecord("2000-03-01", 200),
				mockRecord("2000-03-01", 205),
			}),
		},
		Logger: &logger,
	})
	assert.NoError(t, err)

	_, err = loader.LoadTable(ctx, "GOOG")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrData))
}

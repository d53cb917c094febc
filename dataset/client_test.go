package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

const sampleCSV = `Date,Open,High,Low,Close,Volume,Adj Close
2000-03-01,118.56,132.06,118.50,130.31,38478000,31.68
2000-03-02,127.00,127.94,120.69,122.00,11136800,29.66
`

func TestClientConfigValidate(t *testing.T) {
	logger := zerolog.New(nil)

	tests := []struct {
		name        string
		modify      func(cfg *ClientConfig)
		wantErr     bool
		errContains []string
	}{
		{
			name:    "valid config",
			modify:  func(cfg *ClientConfig) {},
			wantErr: false,
		},
		{
			name: "missing base url",
			modify: func(cfg *ClientConfig) {
				cfg.BaseURL = ""
			},
			wantErr:     true,
			errContains: []string{"base url cannot be an empty string"},
		},
		{
			name: "missing logger",
			modify: func(cfg *ClientConfig) {
				cfg.Logger = nil
			},
			wantErr:     true,
			errContains: []string{"logger cannot be nil"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := &ClientConfig{
				BaseURL: DefaultBaseURL,
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

func TestFormURL(t *testing.T) {
	logger := zerolog.New(nil)
	client, err := NewClient(&ClientConfig{
		BaseURL: DefaultBaseURL,
		Logger:  &logger,
	})
	assert.NoError(t, err)

	url := client.formURL("AAPL")
	assert.Equal(t, url, DefaultBaseURL+"/AAPL.csv")

	// Ensure the scratch buffer is reset between urls.
	url = client.formURL("MSFT")
	assert.Equal(t, url, DefaultBaseURL+"/MSFT.csv")
}

func TestFetchTable(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/AAPL.csv" {
			http.NotFound(w, r)
			return
		}

		fmt.Fprint(w, sampleCSV)
	}))
	defer server.Close()

	logger := zerolog.New(nil)
	client, err := NewClient(&ClientConfig{
		BaseURL:  server.URL,
		CacheDir: t.TempDir(),
		Logger:   &logger,
	})
	assert.NoError(t, err)

	ctx := context.Background()

	table, err := client.FetchTable(ctx, "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, len(table.Records), 2)
	assert.Equal(t, hits.Load(), int64(1))

	// Ensure the second fetch is served from the on-disk cache.
	table, err = client.FetchTable(ctx, "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, len(table.Records), 2)
	assert.Equal(t, hits.Load(), int64(1))

	// Ensure an unexpected response status surfaces as an error.
	_, err = client.FetchTable(ctx, "NOPE")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unexpected status"))
}

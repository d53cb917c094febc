package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dnldd/tickplot/shared"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the default sample dataset endpoint.
	DefaultBaseURL = "https://static.tickdata.dev/stocks"
	// fetchTimeout is the maximum time to wait on a sample table fetch.
	fetchTimeout = time.Second * 10
)

// ClientConfig represents the configuration for the sample dataset client.
type ClientConfig struct {
	// BaseURL is the sample dataset endpoint serving <SYMBOL>.csv tables.
	BaseURL string
	// CacheDir is the directory fetched tables are cached in. Caching is
	// disabled when empty.
	CacheDir string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *ClientConfig) Validate() error {
	var errs error

	if cfg.BaseURL == "" {
		errs = errors.Join(errs, fmt.Errorf("base url cannot be an empty string"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Client represents the sample dataset client. Tables fetched from the
// remote endpoint are cached on disk so a symbol is fetched at most once
// per session.
type Client struct {
	cfg   *ClientConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the client implements the TableFetcher interface.
var _ shared.TableFetcher = (*Client)(nil)

// NewClient initializes a new sample dataset client.
func NewClient(cfg *ClientConfig) (*Client, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating dataset client config: %w", err)
	}

	return &Client{
		cfg:   cfg,
		httpc: http.Client{Timeout: fetchTimeout},
		buf:   bytes.NewBuffer(make([]byte, 0, 128)),
	}, nil
}

// formURL creates the full table url for the provided symbol.
func (c *Client) formURL(symbol string) string {
	c.buf.WriteString(c.cfg.BaseURL)
	c.buf.WriteString("/")
	c.buf.WriteString(symbol)
	c.buf.WriteString(".csv")
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// cachePath returns the on-disk cache location for the provided symbol.
func (c *Client) cachePath(symbol string) string {
	if c.cfg.CacheDir == "" {
		return ""
	}

	return filepath.Join(c.cfg.CacheDir, symbol+".csv")
}

// FetchTable fetches the time series table for the provided symbol,
// preferring the on-disk cache over the remote endpoint.
func (c *Client) FetchTable(ctx context.Context, symbol string) (*shared.Table, error) {
	cachePath := c.cachePath(symbol)
	if cachePath != "" {
		cached, err := os.ReadFile(cachePath)
		if err == nil {
			c.cfg.Logger.Info().Msgf("loading %s from cache: %s", symbol, cachePath)
			return ParseCSV(bytes.NewReader(cached), symbol)
		}
	}

	formedURL := c.formURL(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, formedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating table request for %s: %v", symbol, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching table for %s: %v", symbol, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching table for %s: unexpected status %s", symbol, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %v", err)
	}

	if cachePath != "" {
		err := os.MkdirAll(c.cfg.CacheDir, 0o755)
		if err == nil {
			err = os.WriteFile(cachePath, body, 0o644)
		}
		if err != nil {
			c.cfg.Logger.Error().Msgf("caching %s table: %v", symbol, err)
		}
	}

	c.cfg.Logger.Info().Msgf("fetched %s table from %s", symbol, formedURL)

	return ParseCSV(bytes.NewReader(body), symbol)
}

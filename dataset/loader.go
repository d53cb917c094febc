package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dnldd/tickplot/shared"
	"github.com/rs/zerolog"
)

// LoaderConfig represents the configuration for the table loader.
type LoaderConfig struct {
	// DataDir is a local directory holding <SYMBOL>.csv or <SYMBOL>.json
	// tables. Checked before the fetcher.
	DataDir string
	// Fetcher fetches tables not found locally. Optional when DataDir is set.
	Fetcher shared.TableFetcher
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *LoaderConfig) Validate() error {
	var errs error

	if cfg.DataDir == "" && cfg.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("a data directory or a fetcher is required"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Loader resolves symbols to normalized time series tables, preferring
// local table files over the remote dataset endpoint.
type Loader struct {
	cfg *LoaderConfig
}

// NewLoader initializes a new table loader.
func NewLoader(cfg *LoaderConfig) (*Loader, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating loader config: %w", err)
	}

	return &Loader{cfg: cfg}, nil
}

// loadLocalTable loads a table from the configured data directory.
func (l *Loader) loadLocalTable(symbol string) (*shared.Table, error) {
	paths := []string{
		filepath.Join(l.cfg.DataDir, symbol+".csv"),
		filepath.Join(l.cfg.DataDir, symbol+".json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		l.cfg.Logger.Info().Msgf("loading %s from %s", symbol, path)

		switch {
		case strings.HasSuffix(path, ".json"):
			return ParseJSON(data, symbol)
		default:
			return ParseCSV(strings.NewReader(string(data)), symbol)
		}
	}

	return nil, os.ErrNotExist
}

// LoadTable resolves the provided symbol to a normalized table.
func (l *Loader) LoadTable(ctx context.Context, symbol string) (*shared.Table, error) {
	var table *shared.Table
	var err error

	if l.cfg.DataDir != "" {
		table, err = l.loadLocalTable(symbol)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if table == nil {
		if l.cfg.Fetcher == nil {
			return nil, fmt.Errorf("%w: no local table for %s and no fetcher configured",
				shared.ErrData, symbol)
		}

		table, err = l.cfg.Fetcher.FetchTable(ctx, symbol)
		if err != nil {
			return nil, err
		}
	}

	err = table.Normalize()
	if err != nil {
		return nil, fmt.Errorf("normalizing %s table: %w", symbol, err)
	}

	start, end := table.Span()
	l.cfg.Logger.Info().Msgf("loaded %s table with %d records spanning %s to %s",
		symbol, len(table.Records), start.Format(shared.DateLayout), end.Format(shared.DateLayout))

	return table, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnldd/tickplot/dataset"
	"github.com/dnldd/tickplot/figure"
	"github.com/dnldd/tickplot/indicator"
	"github.com/dnldd/tickplot/render"
	"github.com/dnldd/tickplot/shared"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	// DefaultClickPolicy is the legend click policy used when none is set.
	DefaultClickPolicy = "mute"
	// DefaultLegendLocation is the legend placement used when none is set.
	DefaultLegendLocation = "top_left"
	// DefaultHoverMode is the hover probe mode used when none is set.
	DefaultHoverMode = "vline"
)

// PlotConfig represents the configuration struct for the plot service.
type PlotConfig struct {
	// Symbols are the stock symbols to chart.
	Symbols []string
	// DataDir is an optional local directory holding symbol tables.
	DataDir string
	// DataBaseURL is the sample dataset endpoint.
	DataBaseURL string
	// CacheDir is the directory fetched tables are cached in.
	CacheDir string
	// OutputPath is the interactive chart output path.
	OutputPath string
	// SnapshotPath is an optional static png output path.
	SnapshotPath string
	// OpenBrowser opens the rendered chart in the system browser.
	OpenBrowser bool
	// Title is the chart title.
	Title string
	// Theme is the chart theme.
	Theme string
	// ClickPolicy is the legend click policy name.
	ClickPolicy string
	// LegendLocation is the legend placement name.
	LegendLocation string
	// HoverMode is the hover probe mode name.
	HoverMode string
	// Tools is the comma separated interaction tool set, defaulting to
	// the full set when empty.
	Tools string
	// SMAWindow adds a moving average overlay per series when positive.
	SMAWindow int
	// VWAP adds a volume weighted average price overlay per series.
	VWAP bool
}

// Validate asserts the config has sane inputs.
func (cfg *PlotConfig) Validate() error {
	var errs error

	if len(cfg.Symbols) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no symbols provided for plot service"))
	}
	if cfg.DataDir == "" && cfg.DataBaseURL == "" {
		errs = errors.Join(errs, fmt.Errorf("a data directory or a data base url is required"))
	}
	if cfg.OutputPath == "" {
		errs = errors.Join(errs, fmt.Errorf("output path cannot be an empty string"))
	}
	if cfg.Title == "" {
		errs = errors.Join(errs, fmt.Errorf("title cannot be an empty string"))
	}
	if cfg.SMAWindow < 0 {
		errs = errors.Join(errs, fmt.Errorf("sma window cannot be negative"))
	}

	return errs
}

// Plot represents the chart preparation service. A session is strictly
// sequential: load each table, normalize it, wrap it in a source, add one
// styled line layer per table, attach the hover spec and legend policy,
// then render and display the artifact.
type Plot struct {
	cfg         *PlotConfig
	loader      *dataset.Loader
	html        *render.HTMLRenderer
	snapshot    *render.SnapshotRenderer
	clickPolicy figure.ClickPolicy
	location    figure.Location
	hoverMode   figure.ProbeMode
	tools       []figure.Tool
	logger      *zerolog.Logger
}

// NewPlot initializes a new plot service.
func NewPlot(cfg *PlotConfig) (*Plot, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating plot config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "plot").Logger()

	clickPolicyName := cfg.ClickPolicy
	if clickPolicyName == "" {
		clickPolicyName = DefaultClickPolicy
	}
	clickPolicy, err := figure.ParseClickPolicy(clickPolicyName)
	if err != nil {
		return nil, err
	}

	locationName := cfg.LegendLocation
	if locationName == "" {
		locationName = DefaultLegendLocation
	}
	location, err := figure.ParseLocation(locationName)
	if err != nil {
		return nil, err
	}

	hoverModeName := cfg.HoverMode
	if hoverModeName == "" {
		hoverModeName = DefaultHoverMode
	}
	hoverMode, err := figure.ParseProbeMode(hoverModeName)
	if err != nil {
		return nil, err
	}

	var tools []figure.Tool
	if cfg.Tools != "" {
		tools, err = figure.ParseTools(cfg.Tools)
		if err != nil {
			return nil, err
		}
	}

	var fetcher shared.TableFetcher
	if cfg.DataBaseURL != "" {
		clientLogger := logger.With().Str("component", "dataset").Logger()
		client, err := dataset.NewClient(&dataset.ClientConfig{
			BaseURL:  cfg.DataBaseURL,
			CacheDir: cfg.CacheDir,
			Logger:   &clientLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating dataset client: %v", err)
		}

		fetcher = client
	}

	loaderLogger := logger.With().Str("component", "loader").Logger()
	loader, err := dataset.NewLoader(&dataset.LoaderConfig{
		DataDir: cfg.DataDir,
		Fetcher: fetcher,
		Logger:  &loaderLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating table loader: %v", err)
	}

	htmlLogger := logger.With().Str("component", "html").Logger()
	html, err := render.NewHTMLRenderer(&render.HTMLConfig{
		Theme:  cfg.Theme,
		Logger: &htmlLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating html renderer: %v", err)
	}

	var snapshot *render.SnapshotRenderer
	if cfg.SnapshotPath != "" {
		snapshotLogger := logger.With().Str("component", "snapshot").Logger()
		snapshot, err = render.NewSnapshotRenderer(&render.SnapshotConfig{
			Logger: &snapshotLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating snapshot renderer: %v", err)
		}
	}

	service := &Plot{
		cfg:         cfg,
		loader:      loader,
		html:        html,
		snapshot:    snapshot,
		clickPolicy: clickPolicy,
		location:    location,
		hoverMode:   hoverMode,
		tools:       tools,
		logger:      &logger,
	}

	return service, nil
}

// addOverlay appends an indicator series as a non-hoverable overlay
// sharing the base series color.
func (p *Plot) addOverlay(fig *figure.Figure, label string, field shared.Field, dates []time.Time, values []float64, idx int) error {
	source, err := figure.NewDerivedSource(label, field, dates, values)
	if err != nil {
		return err
	}

	style := figure.DefaultStyle(idx, label)
	style.LineWidth = 1
	style.BaseAlpha = 0.5

	layer, err := fig.AddLine(source, shared.FieldDate, field, style)
	if err != nil {
		return err
	}

	layer.Hoverable = false

	return nil
}

// addSMAOverlay overlays the moving average of the table's open prices.
func (p *Plot) addSMAOverlay(fig *figure.Figure, table *shared.Table, idx int) error {
	dates, averages, err := indicator.SMA(table, shared.FieldOpen, p.cfg.SMAWindow)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("%s SMA(%d)", table.Symbol, p.cfg.SMAWindow)
	return p.addOverlay(fig, label, shared.FieldOpen, dates, averages, idx)
}

// addVWAPOverlay overlays the cumulative volume weighted average price of
// the table.
func (p *Plot) addVWAPOverlay(fig *figure.Figure, table *shared.Table, idx int) error {
	dates, values, err := indicator.VWAP(table)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("%s VWAP", table.Symbol)
	return p.addOverlay(fig, label, shared.FieldClose, dates, values, idx)
}

// buildFigure runs the chart preparation pipeline: one styled line layer
// per symbol bound to its table's (date, open) projection, optional
// moving average overlays, then the hover spec and legend policy.
func (p *Plot) buildFigure(ctx context.Context) (*figure.Figure, error) {
	fig, err := figure.NewFigure(&figure.FigureConfig{
		Title:      p.cfg.Title,
		XAxisLabel: "Date",
		YAxisLabel: "Price",
		Tools:      p.tools,
		Legend: figure.Legend{
			Location:    p.location,
			ClickPolicy: p.clickPolicy,
		},
	})
	if err != nil {
		return nil, err
	}

	for idx, symbol := range p.cfg.Symbols {
		table, err := p.loader.LoadTable(ctx, symbol)
		if err != nil {
			return nil, err
		}

		source, err := figure.NewSource(table)
		if err != nil {
			return nil, err
		}

		_, err = fig.AddLine(source, shared.FieldDate, shared.FieldOpen,
			figure.DefaultStyle(idx, symbol))
		if err != nil {
			return nil, err
		}

		if p.cfg.SMAWindow > 0 {
			err = p.addSMAOverlay(fig, table, idx)
			if err != nil {
				return nil, err
			}
		}

		if p.cfg.VWAP {
			err = p.addVWAPOverlay(fig, table, idx)
			if err != nil {
				return nil, err
			}
		}

		p.logger.Info().Msgf("added %s layer with %d records", symbol, source.Len())
	}

	// A muted series drops out of hover lookups only when legend clicks
	// mute instead of hide.
	mutedPolicy := figure.MutedShow
	if p.clickPolicy == figure.ClickMute {
		mutedPolicy = figure.MutedIgnore
	}

	err = fig.AttachHover(figure.DefaultHoverSpec(p.hoverMode, mutedPolicy))
	if err != nil {
		return nil, err
	}

	return fig, nil
}

// Run runs the plot session: build the figure, render the artifacts and
// optionally open the interactive chart. The first data or configuration
// error aborts the session.
func (p *Plot) Run(ctx context.Context) error {
	fig, err := p.buildFigure(ctx)
	if err != nil {
		return err
	}

	err = p.html.RenderToFile(fig, p.cfg.OutputPath)
	if err != nil {
		return err
	}

	if p.snapshot != nil {
		err = p.snapshot.RenderToFile(fig, p.cfg.SnapshotPath)
		if err != nil {
			return err
		}
	}

	if p.cfg.OpenBrowser {
		err = render.Show(p.cfg.OutputPath)
		if err != nil {
			return err
		}
	}

	return nil
}

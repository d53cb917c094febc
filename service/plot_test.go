package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dnldd/tickplot/figure"
	"github.com/dnldd/tickplot/shared"
	"github.com/peterldowns/testy/assert"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func basePlotConfig() PlotConfig {
	return PlotConfig{
		Symbols:        []string{"AAPL"},
		DataDir:        "testdata",
		OutputPath:     "chart.html",
		Title:          "Stock Closing Prices",
		ClickPolicy:    "mute",
		LegendLocation: "top_left",
		HoverMode:      "vline",
	}
}

func TestPlotConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(cfg *PlotConfig)
		wantErr     bool
		errContains []string
	}{
		{
			name:    "valid config",
			modify:  func(cfg *PlotConfig) {},
			wantErr: false,
		},
		{
			name: "no symbols",
			modify: func(cfg *PlotConfig) {
				cfg.Symbols = nil
			},
			wantErr:     true,
			errContains: []string{"no symbols provided"},
		},
		{
			name: "no data source",
			modify: func(cfg *PlotConfig) {
				cfg.DataDir = ""
				cfg.DataBaseURL = ""
			},
			wantErr:     true,
			errContains: []string{"a data directory or a data base url is required"},
		},
		{
			name: "missing output path",
			modify: func(cfg *PlotConfig) {
				cfg.OutputPath = ""
			},
			wantErr:     true,
			errContains: []string{"output path cannot be an empty string"},
		},
		{
			name: "missing title",
			modify: func(cfg *PlotConfig) {
				cfg.Title = ""
			},
			wantErr:     true,
			errContains: []string{"title cannot be an empty string"},
		},
		{
			name: "negative sma window",
			modify: func(cfg *PlotConfig) {
				cfg.SMAWindow = -1
			},
			wantErr:     true,
			errContains: []string{"sma window cannot be negative"},
		},
		{
			name: "multiple errors",
			modify: func(cfg *PlotConfig) {
				cfg.Symbols = nil
				cfg.Title = ""
			},
			wantErr: true,
			errContains: []string{
				"no symbols provided",
				"title cannot be an empty string",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := basePlotConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				for _, substr := range tt.errContains {
					assert.True(t, strings.Contains(err.Error(), substr))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPlotDefaults(t *testing.T) {
	// Ensure empty interaction names fall back to the documented defaults.
	cfg := basePlotConfig()
	cfg.ClickPolicy = ""
	cfg.LegendLocation = ""
	cfg.HoverMode = ""
	cfg.Tools = ""

	plot, err := NewPlot(&cfg)
	assert.NoError(t, err)

	assert.Equal(t, plot.clickPolicy, figure.ClickMute)
	assert.Equal(t, plot.location, figure.TopLeft)
	assert.Equal(t, plot.hoverMode, figure.ProbeVLine)
	assert.Equal(t, len(plot.tools), 0)
	assert.Equal(t, plot.snapshot == nil, true)
}

func TestNewPlotErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *PlotConfig)
	}{
		{
			name: "unknown click policy",
			modify: func(cfg *PlotConfig) {
				cfg.ClickPolicy = "dim"
			},
		},
		{
			name: "unknown legend location",
			modify: func(cfg *PlotConfig) {
				cfg.LegendLocation = "center"
			},
		},
		{
			name: "unknown hover mode",
			modify: func(cfg *PlotConfig) {
				cfg.HoverMode = "crosshair"
			},
		},
		{
			name: "unknown tool",
			modify: func(cfg *PlotConfig) {
				cfg.Tools = "pan,lasso"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := basePlotConfig()
			tt.modify(&cfg)

			plot, err := NewPlot(&cfg)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrConfig))
			assert.Equal(t, plot == nil, true)
		})
	}
}

func TestPlotRun(t *testing.T) {
	outDir := t.TempDir()

	cfg := basePlotConfig()
	cfg.Symbols = []string{"AAPL", "GOOG", "IBM", "MSFT"}
	cfg.OutputPath = filepath.Join(outDir, "chart.html")
	cfg.SnapshotPath = filepath.Join(outDir, "chart.png")
	cfg.SMAWindow = 2
	cfg.VWAP = true

	plot, err := NewPlot(&cfg)
	assert.NoError(t, err)

	ctx := context.Background()

	// Ensure the session runs the full pipeline without error.
	err = plot.Run(ctx)
	assert.NoError(t, err)

	// Ensure the interactive artifact carries a series per symbol plus
	// its moving average overlay.
	page, err := os.ReadFile(cfg.OutputPath)
	assert.NoError(t, err)

	html := string(page)
	for _, symbol := range cfg.Symbols {
		assert.True(t, strings.Contains(html, symbol))
	}
	assert.True(t, strings.Contains(html, "AAPL SMA(2)"))
	assert.True(t, strings.Contains(html, "AAPL VWAP"))
	assert.True(t, strings.Contains(html, cfg.Title))

	// Ensure the mute click policy installed its legend interception.
	assert.True(t, strings.Contains(html, "legendselectchanged"))

	// Ensure the static snapshot is a png.
	snapshot, err := os.ReadFile(cfg.SnapshotPath)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(snapshot, pngMagic))
}

func TestPlotRunErrors(t *testing.T) {
	outDir := t.TempDir()

	// Ensure a symbol with no table fails the session with a data fault.
	cfg := basePlotConfig()
	cfg.Symbols = []string{"AAPL", "NOPE"}
	cfg.OutputPath = filepath.Join(outDir, "chart.html")

	plot, err := NewPlot(&cfg)
	assert.NoError(t, err)

	ctx := context.Background()

	err = plot.Run(ctx)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrData))

	// Ensure a moving average window wider than the table fails loudly.
	cfg = basePlotConfig()
	cfg.OutputPath = filepath.Join(outDir, "chart.html")
	cfg.SMAWindow = 12

	plot, err = NewPlot(&cfg)
	assert.NoError(t, err)

	err = plot.Run(ctx)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrData))
}
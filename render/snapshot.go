package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dnldd/tickplot/figure"
	"github.com/dnldd/tickplot/shared"
	"github.com/rs/zerolog"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	// DefaultSnapshotWidth is the default snapshot raster width.
	DefaultSnapshotWidth = 1280
	// DefaultSnapshotHeight is the default snapshot raster height.
	DefaultSnapshotHeight = 720
)

// SnapshotConfig represents the configuration for the static snapshot
// renderer.
type SnapshotConfig struct {
	// Width is the raster width in pixels.
	Width int
	// Height is the raster height in pixels.
	Height int
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *SnapshotConfig) Validate() error {
	var errs error

	if cfg.Width < 0 || cfg.Height < 0 {
		errs = errors.Join(errs, fmt.Errorf("snapshot dimensions cannot be negative"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// SnapshotRenderer lowers a figure into a static png raster. Interactive
// behavior is dropped; muted layers render at their muted style.
type SnapshotRenderer struct {
	cfg *SnapshotConfig
}

// NewSnapshotRenderer initializes a new snapshot renderer.
func NewSnapshotRenderer(cfg *SnapshotConfig) (*SnapshotRenderer, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating snapshot renderer config: %w", err)
	}

	if cfg.Width == 0 {
		cfg.Width = DefaultSnapshotWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultSnapshotHeight
	}

	return &SnapshotRenderer{cfg: cfg}, nil
}

// strokeColor converts a hex color and an alpha into a draw color.
func strokeColor(hex string, alpha float64) (drawing.Color, error) {
	r, g, b, err := figure.ParseHexColor(hex)
	if err != nil {
		return drawing.Color{}, err
	}

	return drawing.Color{R: r, G: g, B: b, A: uint8(alpha * 255)}, nil
}

// Render lowers the figure into a png raster written to the provided
// writer.
func (r *SnapshotRenderer) Render(fig *figure.Figure, w io.Writer) error {
	err := fig.Validate()
	if err != nil {
		return err
	}

	series := make([]chart.Series, 0, len(fig.Layers()))
	for _, layer := range fig.Layers() {
		dates, values, err := layer.Source.Project(layer.X, layer.Y)
		if err != nil {
			return fmt.Errorf("resolving %s layer points: %w", layer.Style.LegendLabel, err)
		}

		color, alpha := layer.Style.Color, layer.Style.BaseAlpha
		if layer.Muted {
			color, alpha = layer.Style.MutedColor, layer.Style.MutedAlpha
		}

		stroke, err := strokeColor(color, alpha)
		if err != nil {
			return fmt.Errorf("%w: %s stroke color: %v", shared.ErrConfig,
				layer.Style.LegendLabel, err)
		}

		series = append(series, chart.TimeSeries{
			Name:    layer.Style.LegendLabel,
			XValues: dates,
			YValues: values,
			Style: chart.Style{
				StrokeColor: stroke,
				StrokeWidth: layer.Style.LineWidth,
			},
		})
	}

	graph := chart.Chart{
		Title:  fig.Config().Title,
		Width:  r.cfg.Width,
		Height: r.cfg.Height,
		XAxis: chart.XAxis{
			Name:           fig.Config().XAxisLabel,
			ValueFormatter: chart.TimeValueFormatterWithFormat(shared.DateLayout),
		},
		YAxis: chart.YAxis{
			Name: fig.Config().YAxisLabel,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	err = graph.Render(chart.PNG, w)
	if err != nil {
		return fmt.Errorf("rendering figure %s snapshot: %v", fig.ID(), err)
	}

	return nil
}

// RenderToFile renders the figure into the provided png file path.
func (r *SnapshotRenderer) RenderToFile(fig *figure.Figure, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	defer file.Close()

	err = r.Render(fig, file)
	if err != nil {
		return err
	}

	r.cfg.Logger.Info().Msgf("wrote chart snapshot to %s", path)

	return nil
}

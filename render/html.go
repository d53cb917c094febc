package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/tickplot/figure"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog"
)

const (
	// DefaultTheme is the default chart theme.
	DefaultTheme = "white"
	// DefaultWidth is the default css width of the chart.
	DefaultWidth = "1200px"
	// DefaultHeight is the default css height of the chart.
	DefaultHeight = "600px"
)

// HTMLConfig represents the configuration for the interactive html
// renderer.
type HTMLConfig struct {
	// Theme is the chart theme.
	Theme string
	// Width is the css width of the chart.
	Width string
	// Height is the css height of the chart.
	Height string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *HTMLConfig) Validate() error {
	var errs error

	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// HTMLRenderer lowers a figure into an interactive html page driven by
// the embedded charting runtime.
type HTMLRenderer struct {
	cfg *HTMLConfig
}

// NewHTMLRenderer initializes a new html renderer.
func NewHTMLRenderer(cfg *HTMLConfig) (*HTMLRenderer, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating html renderer config: %w", err)
	}

	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.Width == "" {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == "" {
		cfg.Height = DefaultHeight
	}

	return &HTMLRenderer{cfg: cfg}, nil
}

// legendPosition maps a legend location to the runtime's alignment pair.
func legendPosition(location figure.Location) (string, string) {
	switch location {
	case figure.TopLeft:
		return "left", "top"
	case figure.TopRight:
		return "right", "top"
	case figure.BottomLeft:
		return "left", "bottom"
	default:
		return "right", "bottom"
	}
}

// hasTool asserts whether the provided tool is in the tool set.
func hasTool(tools []figure.Tool, tool figure.Tool) bool {
	for idx := range tools {
		if tools[idx] == tool {
			return true
		}
	}

	return false
}

// globalOptions lowers the figure's title, axes, legend, tools and hover
// spec into chart options.
func (r *HTMLRenderer) globalOptions(fig *figure.Figure, formatter string) []charts.GlobalOpts {
	cfg := fig.Config()
	left, top := legendPosition(cfg.Legend.Location)

	options := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:   chartJSID(fig),
			PageTitle: cfg.Title,
			Theme:     r.cfg.Theme,
			Width:     r.cfg.Width,
			Height:    r.cfg.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: cfg.Title,
			Left:  "center",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Left: left,
			Top:  top,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: cfg.XAxisLabel,
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  cfg.YAxisLabel,
			Type:  "value",
			Scale: opts.Bool(true),
		}),
	}

	hover := fig.Hover()
	if hover != nil {
		tooltip := opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "axis",
			Formatter: opts.FuncOpts(formatter),
			AxisPointer: &opts.AxisPointer{
				Type: "line",
			},
		}
		if hover.Mode == figure.ProbePoint {
			tooltip.Trigger = "item"
			tooltip.AxisPointer = nil
		}

		options = append(options, charts.WithTooltipOpts(tooltip))
	}

	if hasTool(cfg.Tools, figure.Pan) || hasTool(cfg.Tools, figure.WheelZoom) {
		options = append(options, charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside", Start: 0, End: 100},
			opts.DataZoom{Type: "slider", Start: 0, End: 100},
		))
	}

	feature := &opts.ToolBoxFeature{}
	hasFeature := false
	if hasTool(cfg.Tools, figure.BoxZoom) {
		feature.DataZoom = &opts.ToolBoxFeatureDataZoom{
			Show:  opts.Bool(true),
			Title: map[string]string{"zoom": "box zoom", "back": "undo zoom"},
		}
		hasFeature = true
	}
	if hasTool(cfg.Tools, figure.Reset) {
		feature.Restore = &opts.ToolBoxFeatureRestore{
			Show:  opts.Bool(true),
			Title: "reset",
		}
		hasFeature = true
	}
	if hasTool(cfg.Tools, figure.Save) {
		feature.SaveAsImage = &opts.ToolBoxFeatureSaveAsImage{
			Show:  opts.Bool(true),
			Title: "save",
		}
		hasFeature = true
	}
	if hasFeature {
		options = append(options, charts.WithToolboxOpts(opts.Toolbox{
			Show:    opts.Bool(true),
			Feature: feature,
		}))
	}

	return options
}

// Render lowers the figure into a self-contained interactive html page
// written to the provided writer.
func (r *HTMLRenderer) Render(fig *figure.Figure, w io.Writer) error {
	err := fig.Validate()
	if err != nil {
		r.cfg.Logger.Error().Msgf("figure %s failed render validation: %v, hover spec: %s",
			fig.ID(), err, spew.Sdump(fig.Hover()))
		return err
	}

	var formatter string
	if fig.Hover() != nil {
		formatter, err = tooltipFormatterJS(fig)
		if err != nil {
			return fmt.Errorf("generating tooltip formatter: %v", err)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(r.globalOptions(fig, formatter)...)

	for _, layer := range fig.Layers() {
		points, err := layerPoints(layer)
		if err != nil {
			return fmt.Errorf("resolving %s layer points: %w", layer.Style.LegendLabel, err)
		}

		data := make([]opts.LineData, len(points))
		for idx := range points {
			data[idx] = opts.LineData{Value: points[idx]}
		}

		color, alpha := layer.Style.Color, layer.Style.BaseAlpha
		if layer.Muted {
			color, alpha = layer.Style.MutedColor, layer.Style.MutedAlpha
		}

		line.AddSeries(layer.Style.LegendLabel, data,
			charts.WithLineStyleOpts(opts.LineStyle{
				Color:   color,
				Width:   float32(layer.Style.LineWidth),
				Opacity: float32(alpha),
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:   color,
				Opacity: float32(alpha),
			}),
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(false),
			}),
		)
	}

	switch fig.Config().Legend.ClickPolicy {
	case figure.ClickMute:
		snippet, err := muteSnippetJS(fig)
		if err != nil {
			return fmt.Errorf("generating mute snippet: %v", err)
		}

		line.AddJSFuncs(snippet)
	case figure.ClickNone:
		line.AddJSFuncs(noneSnippetJS(fig))
	}

	err = line.Render(w)
	if err != nil {
		return fmt.Errorf("rendering figure %s: %v", fig.ID(), err)
	}

	return nil
}

// RenderToFile renders the figure into the provided html file path.
func (r *HTMLRenderer) RenderToFile(fig *figure.Figure, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	defer file.Close()

	err = r.Render(fig, file)
	if err != nil {
		return err
	}

	r.cfg.Logger.Info().Msgf("wrote interactive chart to %s", path)

	return nil
}

package figure

import (
	"errors"
	"fmt"

	"github.com/dnldd/tickplot/shared"
	"github.com/google/uuid"
)

// FigureConfig represents the chart artifact configuration.
type FigureConfig struct {
	// Title is the chart title.
	Title string
	// XAxisLabel is the x axis label.
	XAxisLabel string
	// YAxisLabel is the y axis label.
	YAxisLabel string
	// Tools are the interaction tools attached to the figure, defaulting
	// to the full set when empty.
	Tools []Tool
	// Legend configures legend placement and click interaction.
	Legend Legend
}

// Validate asserts the config has sane inputs.
func (cfg *FigureConfig) Validate() error {
	var errs error

	if cfg.Title == "" {
		errs = errors.Join(errs, fmt.Errorf("title cannot be an empty string"))
	}

	return errs
}

// Layer represents one renderable line layer, binding a source projection
// to a styled line primitive.
type Layer struct {
	// ID uniquely identifies the layer.
	ID string
	// Source is the data source the layer draws from.
	Source *Source
	// X is the field driving the x axis, always the date field.
	X shared.Field
	// Y is the field driving the y axis.
	Y shared.Field
	// Style is the presentation metadata of the layer.
	Style *SeriesStyle
	// Muted marks the layer as starting in its muted style.
	Muted bool
	// Hoverable marks the layer as a hover lookup candidate. Derived
	// overlays opt out.
	Hoverable bool
}

// Figure represents the renderable chart artifact. Successive draw and
// attachment calls mutate it in place; addition order fixes both z-order
// and legend order.
type Figure struct {
	cfg    *FigureConfig
	id     string
	layers []*Layer
	hover  *HoverSpec
}

// NewFigure initializes a new figure.
func NewFigure(cfg *FigureConfig) (*Figure, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating figure config: %w", err)
	}

	if len(cfg.Tools) == 0 {
		cfg.Tools = DefaultTools()
	}

	return &Figure{
		cfg: cfg,
		id:  uuid.New().String(),
	}, nil
}

// ID returns the unique figure identifier.
func (f *Figure) ID() string {
	return f.id
}

// Config returns the figure configuration.
func (f *Figure) Config() *FigureConfig {
	return f.cfg
}

// Layers returns the figure layers in draw order.
func (f *Figure) Layers() []*Layer {
	return f.layers
}

// Hover returns the attached hover spec, nil when none is attached.
func (f *Figure) Hover() *HoverSpec {
	return f.hover
}

// fillStyle applies palette, symbol and width defaults to unset style
// fields, leaving the caller's style untouched.
func fillStyle(style *SeriesStyle, idx int, symbol string) *SeriesStyle {
	filled := *style

	if filled.Color == "" {
		filled.Color = PaletteColor(idx)
	}
	if filled.LegendLabel == "" {
		filled.LegendLabel = symbol
	}
	if filled.MutedColor == "" {
		filled.MutedColor = filled.Color
	}
	if filled.BaseAlpha == 0 {
		filled.BaseAlpha = DefaultBaseAlpha
	}
	if filled.MutedAlpha == 0 {
		filled.MutedAlpha = DefaultMutedAlpha
	}
	if filled.LineWidth == 0 {
		filled.LineWidth = DefaultLineWidth
	}

	return &filled
}

// AddLine appends a line layer binding the (x, y) source projection to a
// line primitive styled per the provided style. A nil style takes the
// default style at the next palette color.
func (f *Figure) AddLine(source *Source, x, y shared.Field, style *SeriesStyle) (*Layer, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: a line layer requires a source", shared.ErrConfig)
	}

	_, _, err := source.Project(x, y)
	if err != nil {
		return nil, fmt.Errorf("projecting (%s, %s) of %s: %w", x.String(), y.String(),
			source.Symbol(), err)
	}

	switch style {
	case nil:
		style = DefaultStyle(len(f.layers), source.Symbol())
	default:
		style = fillStyle(style, len(f.layers), source.Symbol())
	}

	err = style.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: validating %s series style: %v", shared.ErrConfig,
			style.LegendLabel, err)
	}

	layer := &Layer{
		ID:        uuid.New().String(),
		Source:    source,
		X:         x,
		Y:         y,
		Style:     style,
		Hoverable: true,
	}

	f.layers = append(f.layers, layer)

	return layer, nil
}

// checkHoverFields asserts every tooltip field is exposed by every
// hoverable layer's source.
func (f *Figure) checkHoverFields(spec *HoverSpec) error {
	for _, layer := range f.layers {
		if !layer.Hoverable {
			continue
		}

		for idx := range spec.Tooltips {
			field := spec.Tooltips[idx].Field
			if !layer.Source.HasField(field) {
				return fmt.Errorf("%w: %s tooltip references the %s field, absent from %s",
					shared.ErrConfig, spec.Tooltips[idx].Label, field.String(),
					layer.Source.Symbol())
			}
		}
	}

	return nil
}

// AttachHover validates the provided hover spec against every hoverable
// layer and attaches it to the figure.
func (f *Figure) AttachHover(spec *HoverSpec) error {
	if spec == nil {
		return fmt.Errorf("%w: hover spec cannot be nil", shared.ErrConfig)
	}

	err := spec.Validate()
	if err != nil {
		return fmt.Errorf("%w: validating hover spec: %v", shared.ErrConfig, err)
	}

	err = f.checkHoverFields(spec)
	if err != nil {
		return err
	}

	f.hover = spec

	return nil
}

// Validate asserts the figure is renderable: it has layers and the
// attached hover spec still covers every hoverable layer. Layers added
// after hover attachment are re-checked here.
func (f *Figure) Validate() error {
	if len(f.layers) == 0 {
		return fmt.Errorf("%w: figure has no layers", shared.ErrConfig)
	}

	if f.hover != nil {
		err := f.checkHoverFields(f.hover)
		if err != nil {
			return err
		}
	}

	return nil
}

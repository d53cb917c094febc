package figure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLineWidth is the default line layer stroke width.
	DefaultLineWidth = float64(2)
	// DefaultBaseAlpha is the default line layer opacity.
	DefaultBaseAlpha = float64(0.8)
	// DefaultMutedAlpha is the default opacity of a muted line layer.
	DefaultMutedAlpha = float64(0.2)
)

// Palette is the default series color cycle.
var Palette = []string{"#2b83ba", "#abdda4", "#fdae61", "#d7191c"}

// PaletteColor returns the palette color for the provided series index,
// cycling when the index exceeds the palette.
func PaletteColor(idx int) string {
	return Palette[idx%len(Palette)]
}

// ParseHexColor parses a #rrggbb color into its components.
func ParseHexColor(value string) (uint8, uint8, uint8, error) {
	trimmed := strings.TrimPrefix(value, "#")
	if len(trimmed) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", value)
	}

	parsed, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", value)
	}

	return uint8(parsed >> 16), uint8(parsed >> 8 & 0xff), uint8(parsed & 0xff), nil
}

// SeriesStyle represents the presentation metadata attached to one line
// layer. Zero valued fields take defaults at draw time.
type SeriesStyle struct {
	// Color is the line stroke color as a #rrggbb hex string.
	Color string
	// LegendLabel is the legend entry for the layer.
	LegendLabel string
	// MutedColor is the stroke color of the layer while muted, defaulting
	// to Color.
	MutedColor string
	// MutedAlpha is the layer opacity while muted.
	MutedAlpha float64
	// BaseAlpha is the layer opacity.
	BaseAlpha float64
	// LineWidth is the stroke width of the layer.
	LineWidth float64
}

// DefaultStyle returns the standard style for the provided series index
// and legend label.
func DefaultStyle(idx int, label string) *SeriesStyle {
	color := PaletteColor(idx)

	return &SeriesStyle{
		Color:       color,
		LegendLabel: label,
		MutedColor:  color,
		MutedAlpha:  DefaultMutedAlpha,
		BaseAlpha:   DefaultBaseAlpha,
		LineWidth:   DefaultLineWidth,
	}
}

// Validate asserts the style has sane inputs.
func (s *SeriesStyle) Validate() error {
	var errs error

	if _, _, _, err := ParseHexColor(s.Color); err != nil {
		errs = errors.Join(errs, err)
	}
	if s.MutedColor != "" {
		if _, _, _, err := ParseHexColor(s.MutedColor); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if s.LegendLabel == "" {
		errs = errors.Join(errs, fmt.Errorf("legend label cannot be an empty string"))
	}
	if s.BaseAlpha < 0 || s.BaseAlpha > 1 {
		errs = errors.Join(errs, fmt.Errorf("base alpha must be within [0, 1]"))
	}
	if s.MutedAlpha < 0 || s.MutedAlpha > 1 {
		errs = errors.Join(errs, fmt.Errorf("muted alpha must be within [0, 1]"))
	}
	if s.LineWidth <= 0 {
		errs = errors.Join(errs, fmt.Errorf("line width must be positive"))
	}

	return errs
}

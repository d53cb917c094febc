package figure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dnldd/tickplot/shared"
)

// ProbeMode represents how the hover tool locates candidate points.
type ProbeMode int

const (
	// ProbeVLine matches the nearest point of every series along a
	// vertical line through the pointer.
	ProbeVLine ProbeMode = iota
	// ProbePoint matches only points close to the pointer position.
	ProbePoint
)

// String stringifies the provided probe mode.
func (m ProbeMode) String() string {
	switch m {
	case ProbeVLine:
		return "vline"
	case ProbePoint:
		return "point"
	default:
		return "unknown"
	}
}

// ParseProbeMode parses a probe mode from its name.
func ParseProbeMode(name string) (ProbeMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vline":
		return ProbeVLine, nil
	case "point":
		return ProbePoint, nil
	default:
		return 0, fmt.Errorf("%w: unknown hover probe mode %q", shared.ErrConfig, name)
	}
}

// MutedPolicy controls whether muted series still take part in hover
// lookups.
type MutedPolicy int

const (
	// MutedShow keeps muted series in hover lookups.
	MutedShow MutedPolicy = iota
	// MutedIgnore removes muted series from hover lookups, used alongside
	// the mute legend click policy.
	MutedIgnore
)

// String stringifies the provided muted policy.
func (p MutedPolicy) String() string {
	switch p {
	case MutedShow:
		return "show"
	case MutedIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// FormatterKind selects how a tooltip field value is rendered.
type FormatterKind int

const (
	// FormatNone renders the value as-is.
	FormatNone FormatterKind = iota
	// FormatDatetime renders the value as a calendar date per a
	// strftime style hint, eg. %F.
	FormatDatetime
	// FormatPrintf renders the value per a printf style hint, eg. %.2f.
	FormatPrintf
	// FormatNumeral renders the value per a numeral style hint,
	// eg. 0.00 a.
	FormatNumeral
)

// Tooltip represents one (label, field, format) tooltip entry.
type Tooltip struct {
	// Label is the display label of the entry.
	Label string
	// Field is the source field the entry renders.
	Field shared.Field
	// Format is the format hint applied to the field value, interpreted
	// per the field's formatter kind.
	Format string
}

// HoverSpec represents the hover tool configuration: ordered tooltip
// entries, per-field formatter kinds, a probe mode and a muted policy.
type HoverSpec struct {
	// Tooltips are the tooltip entries, rendered in order.
	Tooltips []Tooltip
	// Formatters maps fields to the formatter kind applied to them,
	// defaulting to none.
	Formatters map[shared.Field]FormatterKind
	// Mode is the hover probe mode.
	Mode ProbeMode
	// MutedPolicy controls hover lookups for muted series.
	MutedPolicy MutedPolicy
}

// Validate asserts the hover spec has sane inputs.
func (h *HoverSpec) Validate() error {
	var errs error

	if len(h.Tooltips) == 0 {
		errs = errors.Join(errs, fmt.Errorf("hover spec has no tooltip entries"))
	}
	for idx := range h.Tooltips {
		if h.Tooltips[idx].Label == "" {
			errs = errors.Join(errs, fmt.Errorf("tooltip entry %d has no label", idx))
		}
	}

	return errs
}

// FormatterFor returns the formatter kind for the provided field.
func (h *HoverSpec) FormatterFor(field shared.Field) FormatterKind {
	kind, ok := h.Formatters[field]
	if !ok {
		return FormatNone
	}

	return kind
}

// DefaultHoverSpec returns the standard six entry price tooltip: a
// formatted date, two decimal prices and an abbreviated volume.
func DefaultHoverSpec(mode ProbeMode, mutedPolicy MutedPolicy) *HoverSpec {
	return &HoverSpec{
		Tooltips: []Tooltip{
			{Label: "Date", Field: shared.FieldDate, Format: "%F"},
			{Label: "Open", Field: shared.FieldOpen, Format: "%.2f"},
			{Label: "High", Field: shared.FieldHigh, Format: "%.2f"},
			{Label: "Low", Field: shared.FieldLow, Format: "%.2f"},
			{Label: "Close", Field: shared.FieldClose, Format: "%.2f"},
			{Label: "Volume", Field: shared.FieldVolume, Format: "0.00 a"},
		},
		Formatters: map[shared.Field]FormatterKind{
			shared.FieldDate:   FormatDatetime,
			shared.FieldOpen:   FormatPrintf,
			shared.FieldHigh:   FormatPrintf,
			shared.FieldLow:    FormatPrintf,
			shared.FieldClose:  FormatPrintf,
			shared.FieldVolume: FormatNumeral,
		},
		Mode:        mode,
		MutedPolicy: mutedPolicy,
	}
}

package figure

import (
	"fmt"
	"strings"

	"github.com/dnldd/tickplot/shared"
)

// ClickPolicy represents the legend click interaction policy.
type ClickPolicy int

const (
	// ClickNone leaves legend entries inert.
	ClickNone ClickPolicy = iota
	// ClickHide toggles a series' visibility on legend clicks.
	ClickHide
	// ClickMute toggles a series between its base and muted style on
	// legend clicks, keeping it visible.
	ClickMute
)

// String stringifies the provided click policy.
func (p ClickPolicy) String() string {
	switch p {
	case ClickNone:
		return "none"
	case ClickHide:
		return "hide"
	case ClickMute:
		return "mute"
	default:
		return "unknown"
	}
}

// ParseClickPolicy parses a click policy from its name.
func ParseClickPolicy(name string) (ClickPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return ClickNone, nil
	case "hide":
		return ClickHide, nil
	case "mute":
		return ClickMute, nil
	default:
		return 0, fmt.Errorf("%w: unknown legend click policy %q", shared.ErrConfig, name)
	}
}

// Location represents a legend placement corner.
type Location int

const (
	TopLeft Location = iota
	TopRight
	BottomLeft
	BottomRight
)

// String stringifies the provided location.
func (l Location) String() string {
	switch l {
	case TopLeft:
		return "top_left"
	case TopRight:
		return "top_right"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	default:
		return "unknown"
	}
}

// ParseLocation parses a legend location from its name.
func ParseLocation(name string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "top_left":
		return TopLeft, nil
	case "top_right":
		return TopRight, nil
	case "bottom_left":
		return BottomLeft, nil
	case "bottom_right":
		return BottomRight, nil
	default:
		return 0, fmt.Errorf("%w: unknown legend location %q", shared.ErrConfig, name)
	}
}

// Legend represents the figure legend configuration. This is declarative
// state lowered into the rendered artifact, no computation happens here.
type Legend struct {
	// Location is the legend placement corner.
	Location Location
	// ClickPolicy is the legend click interaction policy.
	ClickPolicy ClickPolicy
}

package figure

import (
	"fmt"
	"strings"

	"github.com/dnldd/tickplot/shared"
)

// Tool represents an interaction tool attached to a figure.
type Tool int

const (
	Pan Tool = iota
	WheelZoom
	BoxZoom
	Reset
	Save
)

// String stringifies the provided tool.
func (t Tool) String() string {
	switch t {
	case Pan:
		return "pan"
	case WheelZoom:
		return "wheel_zoom"
	case BoxZoom:
		return "box_zoom"
	case Reset:
		return "reset"
	case Save:
		return "save"
	default:
		return "unknown"
	}
}

// DefaultTools returns the full interaction tool set.
func DefaultTools() []Tool {
	return []Tool{Pan, WheelZoom, BoxZoom, Reset, Save}
}

// ParseTool parses a tool from its name.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pan":
		return Pan, nil
	case "wheel_zoom":
		return WheelZoom, nil
	case "box_zoom":
		return BoxZoom, nil
	case "reset":
		return Reset, nil
	case "save":
		return Save, nil
	default:
		return 0, fmt.Errorf("%w: unknown tool %q", shared.ErrConfig, name)
	}
}

// ParseTools parses a comma separated tool list.
func ParseTools(value string) ([]Tool, error) {
	names := strings.Split(value, ",")
	tools := make([]Tool, 0, len(names))

	for _, name := range names {
		tool, err := ParseTool(name)
		if err != nil {
			return nil, err
		}

		tools = append(tools, tool)
	}

	return tools, nil
}

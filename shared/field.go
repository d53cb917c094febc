package shared

import (
	"fmt"
	"strings"
)

// Field represents a named column of a time series table.
type Field int

const (
	FieldDate Field = iota
	FieldOpen
	FieldHigh
	FieldLow
	FieldClose
	FieldVolume
	FieldAdjClose
)

// String stringifies the provided field.
func (f Field) String() string {
	switch f {
	case FieldDate:
		return "date"
	case FieldOpen:
		return "open"
	case FieldHigh:
		return "high"
	case FieldLow:
		return "low"
	case FieldClose:
		return "close"
	case FieldVolume:
		return "volume"
	case FieldAdjClose:
		return "adj_close"
	default:
		return "unknown"
	}
}

// Fields returns all table fields in their canonical column order.
func Fields() []Field {
	return []Field{FieldDate, FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume, FieldAdjClose}
}

// ParseField parses a field from its column name. Header variants such as
// "Adj Close" and "adjclose" resolve to the adjusted close field.
func ParseField(name string) (Field, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "_")

	switch normalized {
	case "date":
		return FieldDate, nil
	case "open":
		return FieldOpen, nil
	case "high":
		return FieldHigh, nil
	case "low":
		return FieldLow, nil
	case "close":
		return FieldClose, nil
	case "volume":
		return FieldVolume, nil
	case "adj_close", "adjclose", "adjusted_close":
		return FieldAdjClose, nil
	default:
		return 0, fmt.Errorf("%w: unknown field %q", ErrConfig, name)
	}
}

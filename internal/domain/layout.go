package domain

import (
	"fmt"
	"strings"
)

// LayoutMode selects how the gallery arranges its tiles
type LayoutMode int

const (
	// LayoutUniform is a grid of fixed-height cells
	LayoutUniform LayoutMode = iota
	// LayoutPacked is variable-height tiles balanced across columns
	LayoutPacked
)

// String returns the config/flag spelling of the mode
func (m LayoutMode) String() string {
	switch m {
	case LayoutUniform:
		return "uniform"
	case LayoutPacked:
		return "packed"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode
func (m LayoutMode) Toggle() LayoutMode {
	if m == LayoutPacked {
		return LayoutUniform
	}
	return LayoutPacked
}

// ParseLayoutMode accepts "uniform"/"grid" and "packed"/"masonry" (case-insensitive)
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uniform", "grid", "normal":
		return LayoutUniform, nil
	case "packed", "masonry":
		return LayoutPacked, nil
	default:
		return LayoutUniform, fmt.Errorf("unknown layout mode %q", s)
	}
}

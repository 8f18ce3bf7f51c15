package viewport

import "github.com/mmcdole/shutter/internal/domain"

// Column breakpoints in pixels
const (
	BreakpointSmall  = 640
	BreakpointMedium = 768
	BreakpointLarge  = 1024
)

// ColumnsForWidth returns the column count for a viewport width in pixels
func ColumnsForWidth(width float64) int {
	switch {
	case width < BreakpointSmall:
		return 1
	case width < BreakpointMedium:
		return 2
	case width < BreakpointLarge:
		return 3
	default:
		return 4
	}
}

// LayoutController tracks the active layout mode and the viewport width.
// The column count is derived on read, never cached.
type LayoutController struct {
	mode  domain.LayoutMode
	width float64
}

// NewLayoutController creates a controller with an initial mode and viewport width
func NewLayoutController(mode domain.LayoutMode, width float64) *LayoutController {
	return &LayoutController{mode: mode, width: width}
}

// SetMode replaces the layout mode. Any value is accepted.
func (c *LayoutController) SetMode(mode domain.LayoutMode) {
	c.mode = mode
}

// Mode returns the active layout mode
func (c *LayoutController) Mode() domain.LayoutMode {
	return c.mode
}

// Resize records a new viewport width
func (c *LayoutController) Resize(width float64) {
	c.width = width
}

// Width returns the last recorded viewport width
func (c *LayoutController) Width() float64 {
	return c.width
}

// ColumnCount returns the responsive column count for the current width
func (c *LayoutController) ColumnCount() int {
	return ColumnsForWidth(c.width)
}

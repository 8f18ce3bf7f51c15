package viewport

import "github.com/mmcdole/shutter/internal/domain"

// Trigger distances in pixels. Packed columns end unevenly, so the visual
// bottom arrives sooner relative to document height.
const (
	UniformTriggerDistance = 100
	PackedTriggerDistance  = 500
)

// TriggerDistance returns the remaining-scroll threshold for a layout mode
func TriggerDistance(mode domain.LayoutMode) float64 {
	if mode == domain.LayoutPacked {
		return PackedTriggerDistance
	}
	return UniformTriggerDistance
}

// ScrollPosition is one observation of the scrollable document
type ScrollPosition struct {
	ScrollTop      float64
	ViewportHeight float64
	DocumentHeight float64
}

// Remaining returns how far below the viewport the document still extends
func (p ScrollPosition) Remaining() float64 {
	return p.DocumentHeight - (p.ViewportHeight + p.ScrollTop)
}

// FeedStatus is the slice of pagination state the monitor needs
type FeedStatus struct {
	Count     int
	InFlight  bool
	Exhausted bool
}

// ShouldRequest reports whether a scroll position warrants loading the next page
func ShouldRequest(pos ScrollPosition, mode domain.LayoutMode, status FeedStatus) bool {
	if status.Count == 0 || status.InFlight || status.Exhausted {
		return false
	}
	return pos.Remaining() <= TriggerDistance(mode)
}

// ScrollMonitor watches scroll positions while subscribed. It only decides;
// the pagination engine's in-flight guard keeps requests from overlapping.
type ScrollMonitor struct {
	subscribed bool
	mode       domain.LayoutMode
}

// NewScrollMonitor returns an unsubscribed monitor
func NewScrollMonitor() *ScrollMonitor {
	return &ScrollMonitor{}
}

// Subscribe starts observing with the given layout mode
func (m *ScrollMonitor) Subscribe(mode domain.LayoutMode) {
	m.subscribed = true
	m.mode = mode
}

// Unsubscribe stops observing
func (m *ScrollMonitor) Unsubscribe() {
	m.subscribed = false
}

// Subscribed reports whether events are currently observed
func (m *ScrollMonitor) Subscribed() bool {
	return m.subscribed
}

// OnScroll reports whether a position warrants loading more data
func (m *ScrollMonitor) OnScroll(pos ScrollPosition, status FeedStatus) bool {
	if !m.subscribed {
		return false
	}
	return ShouldRequest(pos, m.mode, status)
}

// SetMode switches the trigger distance. The next OnScroll must carry a
// position measured on the re-laid-out view.
func (m *ScrollMonitor) SetMode(mode domain.LayoutMode) {
	m.mode = mode
}

// Mode returns the layout mode whose trigger distance is in effect
func (m *ScrollMonitor) Mode() domain.LayoutMode {
	return m.mode
}

package viewport

import (
	"testing"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTriggerDistance(t *testing.T) {
	assert.Equal(t, 100.0, TriggerDistance(domain.LayoutUniform))
	assert.Equal(t, 500.0, TriggerDistance(domain.LayoutPacked))
}

func TestShouldRequest(t *testing.T) {
	ready := FeedStatus{Count: 20}
	// remaining = 2000 - (800 + 1150) = 50
	nearBottom := ScrollPosition{ScrollTop: 1150, ViewportHeight: 800, DocumentHeight: 2000}
	// remaining = 2000 - (800 + 800) = 400
	midway := ScrollPosition{ScrollTop: 800, ViewportHeight: 800, DocumentHeight: 2000}

	tests := []struct {
		name   string
		pos    ScrollPosition
		mode   domain.LayoutMode
		status FeedStatus
		want   bool
	}{
		{"uniform near bottom", nearBottom, domain.LayoutUniform, ready, true},
		{"uniform midway", midway, domain.LayoutUniform, ready, false},
		{"packed midway", midway, domain.LayoutPacked, ready, true},
		{"exactly at threshold", ScrollPosition{ScrollTop: 1100, ViewportHeight: 800, DocumentHeight: 2000}, domain.LayoutUniform, ready, true},
		{"no items yet", nearBottom, domain.LayoutUniform, FeedStatus{}, false},
		{"in flight", nearBottom, domain.LayoutUniform, FeedStatus{Count: 20, InFlight: true}, false},
		{"exhausted", nearBottom, domain.LayoutUniform, FeedStatus{Count: 20, Exhausted: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRequest(tt.pos, tt.mode, tt.status))
		})
	}
}

func TestScrollMonitorIgnoresEventsWhileUnsubscribed(t *testing.T) {
	m := NewScrollMonitor()
	pos := ScrollPosition{ScrollTop: 1200, ViewportHeight: 800, DocumentHeight: 2000}

	assert.False(t, m.OnScroll(pos, FeedStatus{Count: 1}))

	m.Subscribe(domain.LayoutUniform)
	assert.True(t, m.OnScroll(pos, FeedStatus{Count: 1}))

	m.Unsubscribe()
	assert.False(t, m.Subscribed())
	assert.False(t, m.OnScroll(pos, FeedStatus{Count: 1}))
}

func TestScrollMonitorModeChangeUsesNewThreshold(t *testing.T) {
	m := NewScrollMonitor()
	m.Subscribe(domain.LayoutUniform)
	status := FeedStatus{Count: 10}

	// remaining 300: outside the uniform threshold, inside the packed one
	pos := ScrollPosition{ScrollTop: 900, ViewportHeight: 800, DocumentHeight: 2000}
	assert.False(t, m.OnScroll(pos, status))

	m.SetMode(domain.LayoutPacked)
	assert.Equal(t, domain.LayoutPacked, m.Mode())
	assert.True(t, m.OnScroll(pos, status))

	m.SetMode(domain.LayoutUniform)
	assert.False(t, m.OnScroll(pos, status))
}

func TestScrollMonitorModeChangeAloneNeverRequests(t *testing.T) {
	m := NewScrollMonitor()
	m.Subscribe(domain.LayoutUniform)

	// Deep inside the uniform threshold before the switch
	assert.True(t, m.OnScroll(ScrollPosition{ScrollTop: 1950, ViewportHeight: 50, DocumentHeight: 2000}, FeedStatus{Count: 10}))

	// The packed document is much taller; only a fresh position decides
	m.SetMode(domain.LayoutPacked)
	far := ScrollPosition{ScrollTop: 0, ViewportHeight: 608, DocumentHeight: 3136}
	assert.False(t, m.OnScroll(far, FeedStatus{Count: 10}))
}

package tui

// Vertical layout: single footer line
const ChromeHeight = 1

// contentHeight is the number of lines above the footer
func (m Model) contentHeight() int {
	return max(m.Height-ChromeHeight, 1)
}

// viewportPx converts the content area into pixels for the layout and fit
// calculations
func (m Model) viewportPx() (width, height float64) {
	width = float64(m.Width * m.opts.Metrics.CellWidthPx)
	height = float64(m.contentHeight() * m.opts.Metrics.CellHeightPx)
	return width, height
}

// updateLayout updates component and session sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	widthPx, heightPx := m.viewportPx()

	m.Grid.SetSize(m.Width, m.contentHeight())
	if m.list != nil {
		m.list.Resize(widthPx)
		m.Grid.SetColumns(m.list.ColumnCount())
	}

	m.Detail.SetSize(m.Width, m.contentHeight())
	if m.detail != nil {
		m.detail.Resize(widthPx, heightPx)
		m.Detail.SetState(m.detail.Snapshot())
	}
}

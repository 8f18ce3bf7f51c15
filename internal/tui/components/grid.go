package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/tui/styles"
	"github.com/mmcdole/shutter/internal/viewport"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Blank columns between tile columns, blank lines below every tile
	ColumnGap = 1
	RowGap    = 1

	// Tile heights in lines, border included
	UniformTileRows = 7
	MinTileRows     = 5
	MaxTileRows     = 24

	// Header line above the tiles
	HeaderLines = 1

	MinColumnWidth = 8

	// Lines scrolled per mouse wheel notch
	WheelLines = 3
)

// Metrics is the pixel size of one terminal cell
type Metrics struct {
	CellWidthPx  int
	CellHeightPx int
}

// Grid renders the gallery as uniform or packed columns of tiles.
// Positions are kept in terminal lines and reported to the scroll
// monitor in pixels.
type Grid struct {
	items   []domain.PhotoSummary
	mode    domain.LayoutMode
	columns int
	metrics Metrics

	// Derived from the visible items, mode, columns and width
	layout viewport.PackedLayout

	// Selection
	cursor    int // index into the visible (filtered) items
	scrollTop int // first visible line

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewGrid creates a new grid component
func NewGrid(metrics Metrics) Grid {
	ti := textinput.New()
	ti.Placeholder = "filter by author..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	if metrics.CellWidthPx <= 0 {
		metrics.CellWidthPx = 8
	}
	if metrics.CellHeightPx <= 0 {
		metrics.CellHeightPx = 16
	}

	return Grid{
		metrics:     metrics,
		columns:     1,
		filterInput: ti,
		title:       "Photos",
	}
}

// SetItems replaces the feed. Items only ever grow, so the cursor stays put.
func (g *Grid) SetItems(items []domain.PhotoSummary) {
	g.items = items
	if g.filterActive && g.filterQuery != "" {
		g.refilter()
	}
	g.relayout()
}

// SetMode switches between uniform and packed tiles
func (g *Grid) SetMode(mode domain.LayoutMode) {
	g.mode = mode
	g.relayout()
	g.ensureVisible()
}

// SetColumns sets the number of tile columns
func (g *Grid) SetColumns(columns int) {
	g.columns = max(columns, 1)
	g.relayout()
	g.ensureVisible()
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.relayout()
	g.ensureVisible()
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Mode returns the layout mode being rendered
func (g Grid) Mode() domain.LayoutMode {
	return g.mode
}

// Columns returns the number of tile columns
func (g Grid) Columns() int {
	return g.columns
}

// Cursor returns the cursor position among visible items
func (g Grid) Cursor() int {
	return g.cursor
}

// ScrollTop returns the first visible line
func (g Grid) ScrollTop() int {
	return g.scrollTop
}

// SetCursor moves the cursor and scrolls it into view
func (g *Grid) SetCursor(pos int) {
	count := g.itemCount()
	if count == 0 {
		g.cursor = 0
		return
	}
	g.cursor = min(max(pos, 0), count-1)
	g.ensureVisible()
}

// SelectedPhoto returns the photo under the cursor
func (g Grid) SelectedPhoto() *domain.PhotoSummary {
	count := g.itemCount()
	if count == 0 || g.cursor >= count {
		return nil
	}
	p := g.items[g.mapIndex(g.cursor)]
	return &p
}

// IsEmpty returns true if there are no visible items
func (g Grid) IsEmpty() bool {
	return g.itemCount() == 0
}

// Layout returns the current tile placement, in lines
func (g Grid) Layout() viewport.PackedLayout {
	return g.layout
}

// ScrollPosition reports the current scroll state in pixels
func (g Grid) ScrollPosition() viewport.ScrollPosition {
	cell := float64(g.metrics.CellHeightPx)
	return viewport.ScrollPosition{
		ScrollTop:      float64(g.scrollTop) * cell,
		ViewportHeight: float64(g.viewHeight()) * cell,
		DocumentHeight: g.layout.DocumentHeight() * cell,
	}
}

// viewHeight is the number of lines available to tiles
func (g Grid) viewHeight() int {
	h := g.height - HeaderLines
	if g.filterActive {
		h--
	}
	return max(h, 1)
}

// columnWidth is the width of one tile column, border included
func (g Grid) columnWidth() int {
	w := (g.width - (g.columns-1)*ColumnGap) / g.columns
	return max(w, MinColumnWidth)
}

// tileRows returns a tile's height in lines. Packed tiles follow the photo's
// aspect ratio; uniform tiles and photos of unknown size use a fixed height.
func (g Grid) tileRows(p domain.PhotoSummary, colWidth int) int {
	if g.mode != domain.LayoutPacked || p.Width <= 0 || p.Height <= 0 {
		return UniformTileRows
	}
	px := float64(colWidth*g.metrics.CellWidthPx) / p.AspectRatio()
	rows := int(math.Round(px / float64(g.metrics.CellHeightPx)))
	return min(max(rows, MinTileRows), MaxTileRows)
}

// relayout recomputes tile placement from scratch
func (g *Grid) relayout() {
	colWidth := g.columnWidth()
	count := g.itemCount()

	heights := make([]float64, count)
	for i := 0; i < count; i++ {
		heights[i] = float64(g.tileRows(g.items[g.mapIndex(i)], colWidth))
	}
	g.layout = viewport.Pack(heights, g.columns, RowGap)

	if count > 0 && g.cursor >= count {
		g.cursor = count - 1
	}
	g.clampScroll()
}

func (g *Grid) clampScroll() {
	maxScroll := int(g.layout.DocumentHeight()) - g.viewHeight()
	g.scrollTop = min(g.scrollTop, max(maxScroll, 0))
	g.scrollTop = max(g.scrollTop, 0)
}

// ensureVisible scrolls so the selected tile is on screen
func (g *Grid) ensureVisible() {
	if g.cursor >= len(g.layout.Placements) {
		return
	}
	p := g.layout.Placements[g.cursor]
	top := int(p.Top)
	bottom := top + int(p.Height)
	viewH := g.viewHeight()

	if bottom > g.scrollTop+viewH {
		g.scrollTop = bottom - viewH
	}
	if top < g.scrollTop {
		g.scrollTop = top
	}
	g.clampScroll()
}

// stepColumn moves the cursor to the tile above (-1) or below (+1) in the
// same column
func (g *Grid) stepColumn(dir int) {
	if g.cursor >= len(g.layout.Placements) {
		return
	}
	col := g.layout.Columns[g.layout.Placements[g.cursor].Column]
	for i, idx := range col {
		if idx != g.cursor {
			continue
		}
		next := i + dir
		if next >= 0 && next < len(col) {
			g.cursor = col[next]
			g.ensureVisible()
		}
		return
	}
}

// scrollBy scrolls by delta lines and keeps the cursor on a visible tile in
// its column
func (g *Grid) scrollBy(delta int) {
	g.scrollTop += delta
	g.clampScroll()

	if g.cursor >= len(g.layout.Placements) {
		return
	}
	col := g.layout.Columns[g.layout.Placements[g.cursor].Column]
	for _, idx := range col {
		p := g.layout.Placements[idx]
		if int(p.Top+p.Height) > g.scrollTop {
			g.cursor = idx
			break
		}
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.relayout()
}

// IsFiltering returns true if filter mode is active (showing filtered results)
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused (typing mode)
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	// Keep the selected photo selected
	selected := g.mapIndex(g.cursor)

	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.relayout()

	if selected < len(g.items) {
		g.cursor = selected
	}
	g.ensureVisible()
}

// applyFilter filters items based on the current query
func (g *Grid) applyFilter() {
	g.filterQuery = g.filterInput.Value()
	g.refilter()

	// Reset cursor to first match
	g.cursor = 0
	g.scrollTop = 0
	g.relayout()
}

func (g *Grid) refilter() {
	if g.filterQuery == "" {
		g.filteredIdx = nil
		return
	}

	authors := make([]string, len(g.items))
	for i, p := range g.items {
		authors[i] = strings.ToLower(p.AuthorName)
	}

	matches := fuzzy.Find(strings.ToLower(g.filterQuery), authors)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}
}

// itemCount returns the number of items (accounting for filter)
func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.items)
}

// mapIndex maps a cursor position to the actual index in the data
func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	// Handle filter input when active AND focused (typing mode)
	if g.filterActive && g.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, gridKeys.Escape):
				g.clearFilter()
				return g, nil
			case key.Matches(keyMsg, gridKeys.Accept):
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case keyMsg.String() == "backspace" && g.filterInput.Value() == "":
				g.clearFilter()
				return g, nil
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		if g.filterInput.Value() != g.filterQuery {
			g.applyFilter()
		}
		return g, cmd
	}

	if mouse, ok := msg.(tea.MouseMsg); ok {
		if mouse.Action != tea.MouseActionPress || g.itemCount() == 0 {
			return g, nil
		}
		switch mouse.Button {
		case tea.MouseButtonWheelUp:
			g.scrollBy(-WheelLines)
		case tea.MouseButtonWheelDown:
			g.scrollBy(WheelLines)
		}
		return g, nil
	}

	if !isKey {
		return g, nil
	}

	// Filter active but blurred: navigating the matches
	if g.filterActive {
		switch {
		case key.Matches(keyMsg, gridKeys.Escape):
			g.clearFilter()
			return g, nil
		case key.Matches(keyMsg, gridKeys.Filter):
			g.filterInput.Focus()
			return g, nil
		}
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, gridKeys.Down):
		g.stepColumn(1)
	case key.Matches(keyMsg, gridKeys.Up):
		g.stepColumn(-1)
	case key.Matches(keyMsg, gridKeys.Right):
		g.SetCursor(g.cursor + 1)
	case key.Matches(keyMsg, gridKeys.Left):
		g.SetCursor(g.cursor - 1)
	case key.Matches(keyMsg, gridKeys.Home):
		g.cursor = 0
		g.scrollTop = 0
	case key.Matches(keyMsg, gridKeys.End):
		g.SetCursor(count - 1)
	case key.Matches(keyMsg, gridKeys.HalfDown):
		g.scrollBy(g.viewHeight() / 2)
	case key.Matches(keyMsg, gridKeys.HalfUp):
		g.scrollBy(-g.viewHeight() / 2)
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	lines := []string{g.renderHeader()}

	if g.itemCount() == 0 {
		msg := "No photos yet"
		if g.filterActive && g.filterQuery != "" {
			msg = "No matches"
		}
		body := make([]string, g.viewHeight())
		body[0] = styles.DimStyle.Render(msg)
		lines = append(lines, body...)
	} else {
		lines = append(lines, g.renderBody()...)
	}

	if g.filterActive {
		lines = append(lines, g.renderFilterBar())
	}

	return strings.Join(lines, "\n")
}

func (g Grid) renderHeader() string {
	count := fmt.Sprintf("%d", len(g.items))
	if g.filteredIdx != nil {
		count = fmt.Sprintf("%d/%d", len(g.filteredIdx), len(g.items))
	}

	mode := g.mode.String()
	if g.columns > 1 {
		mode = fmt.Sprintf("%s · %d cols", mode, g.columns)
	}

	left := styles.AccentStyle.Render(g.title) + " " + styles.DimStyle.Render("["+count+"]")
	right := styles.DimBadgeStyle.Render(mode)

	gap := g.width - len([]rune(g.title)) - len(count) - 3 - len([]rune(mode)) - 2
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderBody draws the visible window of tiles column by column
func (g Grid) renderBody() []string {
	viewH := g.viewHeight()
	colWidth := g.columnWidth()
	blank := strings.Repeat(" ", colWidth)

	cols := make([][]string, g.columns)
	for c := range cols {
		cols[c] = make([]string, viewH)
		for y := range cols[c] {
			cols[c][y] = blank
		}
	}

	for i, p := range g.layout.Placements {
		top := int(p.Top)
		height := int(p.Height)
		if top+height <= g.scrollTop || top >= g.scrollTop+viewH {
			continue
		}

		tile := strings.Split(g.renderTile(g.items[g.mapIndex(i)], i == g.cursor, colWidth, height), "\n")
		for j, line := range tile {
			y := top + j - g.scrollTop
			if y >= 0 && y < viewH {
				cols[p.Column][y] = line
			}
		}
	}

	gap := strings.Repeat(" ", ColumnGap)
	rows := make([]string, viewH)
	parts := make([]string, g.columns)
	for y := range rows {
		for c := range cols {
			parts[c] = cols[c][y]
		}
		rows[y] = strings.Join(parts, gap)
	}
	return rows
}

// renderTile draws one photo: a swatch of its dominant color standing in for
// the thumbnail, the author caption, and the id
func (g Grid) renderTile(p domain.PhotoSummary, selected bool, width, height int) string {
	style := styles.TileStyle
	if selected {
		style = styles.TileSelectedStyle
	}

	inner := max(width-BorderWidth-HorizontalPadding, 1)
	swatchRows := max(height-BorderHeight-2, 1)

	lines := make([]string, 0, swatchRows+2)
	for i := 0; i < swatchRows; i++ {
		lines = append(lines, styles.Swatch(p.Color, inner))
	}

	caption := styles.Truncate(p.Caption(), inner)
	if selected {
		caption = styles.TitleStyle.Render(caption)
	} else {
		caption = styles.SubtitleStyle.Render(caption)
	}
	lines = append(lines, caption)

	meta := p.ID
	if p.Width > 0 && p.Height > 0 {
		meta = fmt.Sprintf("%s · %d×%d", p.ID, p.Width, p.Height)
	}
	lines = append(lines, styles.DimStyle.Render(styles.Truncate(meta, inner)))

	return style.
		Width(width - BorderWidth).
		Height(height - BorderHeight).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()

	// Show match count
	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.items)))
	}

	return input + countStr
}

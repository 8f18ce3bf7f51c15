package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	bviewport "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/shutter/internal/service"
	"github.com/mmcdole/shutter/internal/tui/styles"
)

// Detail shows one photo: its metadata and a frame sized by the fit calculator
type Detail struct {
	state   service.DetailState
	metrics Metrics

	body    bviewport.Model
	spinner spinner.Model

	width  int
	height int
}

// NewDetail creates a new detail component
func NewDetail(metrics Metrics) Detail {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	if metrics.CellWidthPx <= 0 {
		metrics.CellWidthPx = 8
	}
	if metrics.CellHeightPx <= 0 {
		metrics.CellHeightPx = 16
	}

	return Detail{
		metrics: metrics,
		body:    bviewport.New(0, 0),
		spinner: sp,
	}
}

// SetState replaces the session snapshot being shown
func (d *Detail) SetState(state service.DetailState) {
	reset := state.PhotoID != d.state.PhotoID || state.Status != d.state.Status
	d.state = state
	d.refresh()
	if reset {
		d.body.GotoTop()
	}
}

// State returns the snapshot being shown
func (d Detail) State() service.DetailState {
	return d.state
}

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.body.Width = width
	d.body.Height = max(height, 1)
	d.refresh()
}

// Tick starts the loading spinner
func (d Detail) Tick() tea.Cmd {
	return d.spinner.Tick
}

// Init initializes the component
func (d Detail) Init() tea.Cmd {
	return d.spinner.Tick
}

// Update handles messages
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if d.state.Status != service.DetailLoading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		d.refresh()
		return d, cmd
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		d.body, cmd = d.body.Update(msg)
		return d, cmd
	}
	return d, nil
}

// View renders the component
func (d Detail) View() string {
	return d.body.View()
}

// FrameSize converts the fitted pixel size into terminal cells
func (d Detail) FrameSize() (cols, rows int) {
	fit := d.state.Fit
	cols = int(math.Round(fit.DisplayWidth / float64(d.metrics.CellWidthPx)))
	rows = int(math.Round(fit.DisplayHeight / float64(d.metrics.CellHeightPx)))
	return cols, rows
}

func (d *Detail) refresh() {
	d.body.SetContent(d.render())
}

func (d Detail) render() string {
	width := max(d.width-4, 10)

	switch d.state.Status {
	case service.DetailLoading:
		return d.spinner.View() + " " + styles.DimStyle.Render("Loading photo "+d.state.PhotoID+"...")
	case service.DetailNotFound:
		return strings.Join([]string{
			styles.ErrorStyle.Render("Photo not found"),
			"",
			styles.DimStyle.Render(styles.Truncate("No photo with id "+d.state.PhotoID, width)),
			styles.DimStyle.Render("esc to go back"),
		}, "\n")
	case service.DetailFailed:
		msg := "unknown error"
		if d.state.Err != nil {
			msg = d.state.Err.Error()
		}
		return strings.Join([]string{
			styles.ErrorStyle.Render("Could not load photo"),
			"",
			lipgloss.NewStyle().Width(width).Render(msg),
			"",
			styles.DimStyle.Render("r to retry · esc to go back"),
		}, "\n")
	}

	photo := d.state.Photo
	if photo == nil {
		return ""
	}

	byline := "By " + photo.AuthorName
	if photo.AuthorHandle != "" {
		byline += " (@" + photo.AuthorHandle + ")"
	}

	lines := []string{
		styles.TitleStyle.Render(styles.Truncate(photo.DisplayTitle(), width)),
		styles.SubtitleStyle.Render(styles.Truncate(byline, width)),
		"",
		d.renderFrame(),
		"",
		lipgloss.NewStyle().Width(width).Render(photo.DisplayDescription()),
		"",
		styles.DimStyle.Render(styles.Truncate("Full: "+photo.FullURL, width)),
	}
	if photo.PageURL != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate("Page: "+photo.PageURL, width)))
	}

	return styles.DetailStyle.Render(strings.Join(lines, "\n"))
}

// renderFrame outlines the area the photo would occupy at its fitted size
func (d Detail) renderFrame() string {
	cols, rows := d.FrameSize()
	cols = max(cols, 12)
	rows = max(rows, 3)

	photo := d.state.Photo
	label := fmt.Sprintf("%s\n%.0f×%.0f px", photo.Resolution(), d.state.Fit.DisplayWidth, d.state.Fit.DisplayHeight)

	return styles.FrameStyle.
		Width(cols - BorderWidth).
		Height(rows - BorderHeight).
		Render(label)
}

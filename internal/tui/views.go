package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/shutter/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var content string
	switch m.Route.Kind {
	case RouteList:
		content = m.Grid.View()
	case RouteDetail:
		content = m.Detail.View()
	default:
		content = m.renderNotFound()
	}

	content = lipgloss.NewStyle().
		Width(m.Width).
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderFooter(),
	)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while a page is in flight, otherwise the status line
	var left string
	if m.Route.Kind == RouteList && m.list != nil && m.list.Snapshot().Loading() {
		left = m.spinner.View() + " " + styles.DimStyle.Render("Loading photos...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center section: route-specific hints
	var center string
	switch m.Route.Kind {
	case RouteList:
		center = hint("enter", "view") + "  " + hint("m", "layout") + "  " + hint("/", "filter")
	case RouteDetail:
		center = hint("esc", "back") + "  " + hint("o", "open")
	}

	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, desc string) string {
	return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
}

// renderNotFound renders the fallback for unknown routes
func (m Model) renderNotFound() string {
	lines := []string{
		styles.ErrorStyle.Render("404 · Page not found"),
		"",
		styles.DimStyle.Render("Nothing lives at " + m.Route.Path),
	}
	if suggestion := SuggestRoute(m.Route.Path); suggestion != "" {
		lines = append(lines, styles.SubtitleStyle.Render("Did you mean "+suggestion+"?"))
	}
	lines = append(lines, "", styles.DimStyle.Render("enter or esc to open the gallery"))

	return lipgloss.Place(m.Width, m.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
GALLERY                         PHOTO
  h/j/k/l    Move selection        esc    Back to gallery
  g/G        First/last photo      j/k    Scroll
  Ctrl+u/d   Scroll half page      o      Open in browser
  Enter      View photo            r      Retry
  m/Tab      Toggle layout
  /          Filter by author    OTHER
  o          Open in browser       ?      This help
  r          Retry failed page     q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

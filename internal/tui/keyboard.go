package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	// While typing a filter every key belongs to the grid
	if m.Route.Kind == RouteList && m.Grid.IsFilterTyping() {
		if msg.String() == "ctrl+c" {
			m.teardown()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Retry):
		return m, m.retry()
	}

	switch m.Route.Kind {
	case RouteList:
		return m.handleListKey(msg)
	case RouteDetail:
		return m.handleDetailKey(msg)
	default:
		if key.Matches(msg, Keys.Back, Keys.Enter) {
			return m, m.goToList()
		}
		return m, nil
	}
}

// handleListKey handles keys on the gallery route
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		if photo := m.Grid.SelectedPhoto(); photo != nil {
			return m, m.openDetail(photo.ID)
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleLayout):
		return m, m.toggleLayout()

	case key.Matches(msg, Keys.Open):
		if photo := m.Grid.SelectedPhoto(); photo != nil && photo.PageURL != "" && m.Opener != nil {
			return m, OpenURLCmd(m.Opener, photo.PageURL)
		}
		return m, nil

	case key.Matches(msg, Keys.Filter) && !m.Grid.IsFiltering():
		m.Grid.ToggleFilter()
		return m, nil
	}

	// Navigation, and esc or / while a filter is shown
	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, tea.Batch(cmd, m.observeScroll())
}

// handleDetailKey handles keys on the detail route
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		return m, m.goToList()

	case key.Matches(msg, Keys.Open):
		state := m.Detail.State()
		if state.Photo == nil || m.Opener == nil {
			return m, nil
		}
		url := state.Photo.PageURL
		if url == "" {
			url = state.Photo.FullURL
		}
		return m, OpenURLCmd(m.Opener, url)
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

// handleMouseMsg routes wheel scrolling to the active view
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State != StateBrowsing || !tea.MouseEvent(msg).IsWheel() {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.Route.Kind {
	case RouteList:
		m.Grid, cmd = m.Grid.Update(msg)
		return m, tea.Batch(cmd, m.observeScroll())
	case RouteDetail:
		m.Detail, cmd = m.Detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

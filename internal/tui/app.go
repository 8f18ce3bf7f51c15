package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/service"
	"github.com/mmcdole/shutter/internal/tui/components"
	"github.com/mmcdole/shutter/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Opener opens a URL outside the terminal
type Opener interface {
	Open(url string) error
}

// Options configures a new Model
type Options struct {
	Route        string // Initial route, "/" when empty
	Layout       domain.LayoutMode
	Metrics      components.Metrics
	FetchTimeout time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Route Route

	// Services
	Gallery *service.GalleryService
	Opener  Opener
	logger  *slog.Logger
	opts    Options

	// Sessions; nil when not mounted
	list   *service.GallerySession
	detail *service.DetailSession

	// UI Components
	Grid    components.Grid
	Detail  components.Detail
	spinner spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model positioned at opts.Route
func NewModel(gallery *service.GalleryService, opener Opener, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Metrics.CellWidthPx <= 0 {
		opts.Metrics.CellWidthPx = 8
	}
	if opts.Metrics.CellHeightPx <= 0 {
		opts.Metrics.CellHeightPx = 16
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := Model{
		State:   StateBrowsing,
		Route:   ParseRoute(opts.Route),
		Gallery: gallery,
		Opener:  opener,
		logger:  logger,
		opts:    opts,
		Grid:    components.NewGrid(opts.Metrics),
		Detail:  components.NewDetail(opts.Metrics),
		spinner: sp,
	}
	m.Grid.SetMode(opts.Layout)
	m.Grid.SetFocused(true)

	switch m.Route.Kind {
	case RouteList:
		m.list = gallery.NewGallerySession(opts.Layout, 0)
	case RouteDetail:
		m.detail = gallery.NewDetailSession(m.Route.PhotoID, 0, 0)
		m.Detail.SetState(m.detail.Snapshot())
	case RouteNotFound:
		logger.Warn("unknown route", "path", m.Route.Path)
	}

	return m
}

// Init mounts the session for the initial route
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}

	if m.list != nil {
		if req, ok := m.list.Mount(); ok {
			cmds = append(cmds, FetchPageCmd(m.list, req, m.opts.FetchTimeout))
		}
	}
	if m.detail != nil {
		if req, ok := m.detail.Begin(); ok {
			cmds = append(cmds, FetchDetailCmd(m.detail, req, m.opts.FetchTimeout), m.Detail.Tick())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, m.observeScroll()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		m.Detail, cmd = m.Detail.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case DetailLoadedMsg:
		msg.Session.Apply(msg.Result)
		if msg.Session == m.detail {
			m.Detail.SetState(m.detail.Snapshot())
		}
		return m, nil

	case PhotoOpenedMsg:
		m.StatusMsg = "Opened in browser"
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, nil
	}

	return m, nil
}

// handlePageLoaded applies a page result; results for sessions that have
// been unmounted come back stale and change nothing
func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	outcome := msg.Session.Apply(msg.Result)
	if msg.Session != m.list || outcome == service.OutcomeStale {
		return m, nil
	}

	snap := m.list.Snapshot()
	m.Grid.SetItems(snap.Items)

	switch outcome {
	case service.OutcomeAppended:
		m.StatusMsg = ""
		m.StatusIsErr = false
	case service.OutcomeExhausted:
		m.StatusMsg = fmt.Sprintf("End of catalog · %d photos", len(snap.Items))
		m.StatusIsErr = false
	case service.OutcomeFailed:
		m.StatusMsg = fmt.Sprintf("Page %d failed: %v · r to retry", msg.Result.Request.Page, msg.Result.Err)
		m.StatusIsErr = true
	}

	return m, nil
}

// observeScroll reports the grid's scroll position to the list session and
// starts a fetch when it crosses the trigger distance
func (m *Model) observeScroll() tea.Cmd {
	if m.list == nil || m.Route.Kind != RouteList || m.Grid.IsFiltering() {
		return nil
	}
	if req, ok := m.list.OnScroll(m.Grid.ScrollPosition()); ok {
		return FetchPageCmd(m.list, req, m.opts.FetchTimeout)
	}
	return nil
}

// toggleLayout switches layout mode without touching the feed. The grid is
// re-laid out first so the threshold check sees the new document.
func (m *Model) toggleLayout() tea.Cmd {
	if m.list == nil {
		return nil
	}
	mode := m.list.ToggleMode()
	m.Grid.SetMode(mode)
	m.Grid.SetColumns(m.list.ColumnCount())
	m.StatusMsg = "Layout: " + mode.String()
	m.StatusIsErr = false

	return m.observeScroll()
}

// retry re-requests whatever failed in the current view
func (m *Model) retry() tea.Cmd {
	switch m.Route.Kind {
	case RouteList:
		if m.list == nil {
			return nil
		}
		if req, ok := m.list.Retry(); ok {
			m.StatusMsg = fmt.Sprintf("Loading page %d...", req.Page)
			m.StatusIsErr = false
			return FetchPageCmd(m.list, req, m.opts.FetchTimeout)
		}
	case RouteDetail:
		if m.detail == nil {
			return nil
		}
		if req, ok := m.detail.Begin(); ok {
			m.Detail.SetState(m.detail.Snapshot())
			return tea.Batch(FetchDetailCmd(m.detail, req, m.opts.FetchTimeout), m.Detail.Tick())
		}
	}
	return nil
}

// openDetail starts a detail session for one photo. The list session stays
// mounted underneath so going back keeps the loaded feed.
func (m *Model) openDetail(photoID string) tea.Cmd {
	if m.detail != nil {
		m.detail.Close()
	}

	widthPx, heightPx := m.viewportPx()
	m.detail = m.Gallery.NewDetailSession(photoID, widthPx, heightPx)
	m.Route = DetailRoute(photoID)
	m.StatusMsg = ""
	m.StatusIsErr = false

	req, ok := m.detail.Begin()
	m.Detail.SetState(m.detail.Snapshot())
	if !ok {
		return nil
	}
	return tea.Batch(FetchDetailCmd(m.detail, req, m.opts.FetchTimeout), m.Detail.Tick())
}

// goToList closes any detail session and returns to the gallery, mounting a
// fresh list session when the app started somewhere else
func (m *Model) goToList() tea.Cmd {
	if m.detail != nil {
		m.detail.Close()
		m.detail = nil
	}
	m.Route = ListRoute()
	m.StatusMsg = ""
	m.StatusIsErr = false

	if m.list != nil {
		return nil
	}

	widthPx, _ := m.viewportPx()
	m.list = m.Gallery.NewGallerySession(m.Grid.Mode(), widthPx)
	m.Grid.SetItems(nil)
	m.Grid.SetColumns(m.list.ColumnCount())

	if req, ok := m.list.Mount(); ok {
		return FetchPageCmd(m.list, req, m.opts.FetchTimeout)
	}
	return nil
}

// teardown releases every session before the program exits
func (m *Model) teardown() {
	if m.list != nil {
		m.list.Unmount()
	}
	if m.detail != nil {
		m.detail.Close()
	}
}

// ListSession returns the mounted gallery session, if any
func (m Model) ListSession() *service.GallerySession {
	return m.list
}

// DetailSession returns the open detail session, if any
func (m Model) DetailSession() *service.DetailSession {
	return m.detail
}

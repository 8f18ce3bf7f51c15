package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/viewport"
)

// GalleryService creates list and detail sessions over one catalog
type GalleryService struct {
	repo    domain.CatalogRepository
	perPage int
	logger  *slog.Logger
}

// NewGalleryService creates a new gallery service
func NewGalleryService(repo domain.CatalogRepository, perPage int, logger *slog.Logger) *GalleryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GalleryService{
		repo:    repo,
		perPage: perPage,
		logger:  logger,
	}
}

// NewGallerySession creates an unmounted list session
func (s *GalleryService) NewGallerySession(mode domain.LayoutMode, width float64) *GallerySession {
	id := uuid.NewString()
	logger := s.logger.With("session", id, "view", "list")

	return &GallerySession{
		id:      id,
		logger:  logger,
		feed:    NewPaginator(s.repo, s.perPage, logger),
		layout:  viewport.NewLayoutController(mode, width),
		monitor: viewport.NewScrollMonitor(),
	}
}

// NewDetailSession creates a detail session for one photo
func (s *GalleryService) NewDetailSession(photoID string, viewportWidth, viewportHeight float64) *DetailSession {
	id := uuid.NewString()
	return newDetailSession(
		id,
		photoID,
		s.repo,
		viewportWidth,
		viewportHeight,
		s.logger.With("session", id, "view", "detail", "photo", photoID),
	)
}

// GallerySession is one mounted list view: its feed, layout and scroll
// subscription. All methods except Fetch run on the event loop.
type GallerySession struct {
	id     string
	logger *slog.Logger

	feed    *Paginator
	layout  *viewport.LayoutController
	monitor *viewport.ScrollMonitor

	mounted      bool
	bootstrapped bool
}

// ID returns the session identifier used in logs
func (s *GallerySession) ID() string {
	return s.id
}

// Mount subscribes to scroll events. The first mount also returns the
// bootstrap request; later mounts and re-renders never do.
func (s *GallerySession) Mount() (PageRequest, bool) {
	if s.feed.Closed() {
		return PageRequest{}, false
	}

	if !s.mounted {
		s.mounted = true
		s.monitor.Subscribe(s.layout.Mode())
		s.logger.Debug("gallery mounted", "mode", s.layout.Mode().String())
	}

	if s.bootstrapped {
		return PageRequest{}, false
	}
	s.bootstrapped = true
	return s.feed.Begin()
}

// Unmount releases the scroll subscription and invalidates in-flight fetches
func (s *GallerySession) Unmount() {
	if s.mounted {
		s.logger.Debug("gallery unmounted", "items", s.feed.Status().Count)
	}
	s.mounted = false
	s.monitor.Unsubscribe()
	s.feed.Close()
}

// Mounted reports whether the session is live
func (s *GallerySession) Mounted() bool {
	return s.mounted
}

// Bootstrapped reports whether the one-shot initial request was issued
func (s *GallerySession) Bootstrapped() bool {
	return s.bootstrapped
}

// OnScroll feeds a scroll position to the monitor and returns a page request
// when the threshold was crossed.
func (s *GallerySession) OnScroll(pos viewport.ScrollPosition) (PageRequest, bool) {
	if !s.mounted {
		return PageRequest{}, false
	}
	if !s.monitor.OnScroll(pos, s.feed.Status()) {
		return PageRequest{}, false
	}
	return s.feed.Begin()
}

// SetMode switches layout mode and trigger distance. Items are never touched
// and nothing is fetched: the caller re-lays out and reports the new scroll
// position through OnScroll, which applies the new threshold.
func (s *GallerySession) SetMode(mode domain.LayoutMode) {
	s.layout.SetMode(mode)
	s.monitor.SetMode(mode)
}

// ToggleMode switches to the other layout mode and returns it
func (s *GallerySession) ToggleMode() domain.LayoutMode {
	mode := s.layout.Mode().Toggle()
	s.SetMode(mode)
	return mode
}

// Resize updates the viewport width used for the column count
func (s *GallerySession) Resize(width float64) {
	s.layout.Resize(width)
}

// Retry asks for the next page directly, through the same in-flight guard
func (s *GallerySession) Retry() (PageRequest, bool) {
	if !s.mounted {
		return PageRequest{}, false
	}
	return s.feed.Begin()
}

// Fetch runs a page request; safe to call from a command goroutine
func (s *GallerySession) Fetch(ctx context.Context, req PageRequest) PageResult {
	return s.feed.Fetch(ctx, req)
}

// Apply folds a completed fetch into the feed
func (s *GallerySession) Apply(res PageResult) PageOutcome {
	return s.feed.Apply(res)
}

// Snapshot returns the feed state for rendering
func (s *GallerySession) Snapshot() PaginationState {
	return s.feed.Snapshot()
}

// Mode returns the active layout mode
func (s *GallerySession) Mode() domain.LayoutMode {
	return s.layout.Mode()
}

// ColumnCount returns the packed-mode column count for the current width
func (s *GallerySession) ColumnCount() int {
	return s.layout.ColumnCount()
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/viewport"
)

const (
	// DefaultPageSize matches the catalog's default page size
	DefaultPageSize = 20
	// MaxPageSize is the largest page the catalog will serve
	MaxPageSize = 30
)

// PageOutcome describes what a completed fetch did to the feed
type PageOutcome int

const (
	// OutcomeSkipped means no fetch was issued (in flight, exhausted or closed)
	OutcomeSkipped PageOutcome = iota
	// OutcomeAppended means a non-empty page was appended
	OutcomeAppended
	// OutcomeExhausted means an empty page marked the end of the catalog
	OutcomeExhausted
	// OutcomeFailed means the fetch failed and the same page will be retried
	OutcomeFailed
	// OutcomeStale means the result arrived after the feed was reset or closed
	OutcomeStale
)

func (o PageOutcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeAppended:
		return "appended"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

// PaginationState is a read-only copy of the feed for rendering
type PaginationState struct {
	Items     []domain.PhotoSummary
	NextPage  int
	InFlight  bool
	Exhausted bool
	LastErr   error // Most recent fetch failure, cleared by the next success
}

// Loading reports whether a page fetch is outstanding
func (s PaginationState) Loading() bool {
	return s.InFlight
}

// Status is the subset of state the scroll monitor needs
func (s PaginationState) Status() viewport.FeedStatus {
	return viewport.FeedStatus{
		Count:     len(s.Items),
		InFlight:  s.InFlight,
		Exhausted: s.Exhausted,
	}
}

// PageRequest is issued by Begin and must be handed back through Apply
type PageRequest struct {
	Page    int
	PerPage int
	epoch   uint64
}

// PageResult carries a completed fetch back to the owning feed
type PageResult struct {
	Request PageRequest
	Items   []domain.PhotoSummary
	Err     error
}

// Paginator owns the accumulated photo feed and its cursor.
// At most one page fetch is outstanding at a time; the in-flight guard is what
// keeps append order equal to request order.
type Paginator struct {
	repo    domain.CatalogRepository
	perPage int
	logger  *slog.Logger

	mu        sync.Mutex
	items     []domain.PhotoSummary
	nextPage  int
	inFlight  bool
	exhausted bool
	lastErr   error
	epoch     uint64
	closed    bool
}

// NewPaginator creates an empty feed starting at page 1
func NewPaginator(repo domain.CatalogRepository, perPage int, logger *slog.Logger) *Paginator {
	if logger == nil {
		logger = slog.Default()
	}
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	return &Paginator{
		repo:     repo,
		perPage:  perPage,
		logger:   logger,
		nextPage: 1,
	}
}

// PerPage returns the fixed page size
func (p *Paginator) PerPage() int {
	return p.perPage
}

// Begin marks a fetch in flight and returns the request to run.
// Returns false without changing state if a fetch is already in flight, the
// catalog is exhausted, or the feed is closed.
func (p *Paginator) Begin() (PageRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.inFlight || p.exhausted {
		return PageRequest{}, false
	}

	p.inFlight = true
	return PageRequest{Page: p.nextPage, PerPage: p.perPage, epoch: p.epoch}, true
}

// Fetch performs the remote call for req. It touches no feed state and may
// run off the event loop.
func (p *Paginator) Fetch(ctx context.Context, req PageRequest) PageResult {
	items, err := p.repo.ListPhotos(ctx, req.Page, req.PerPage)
	return PageResult{Request: req, Items: items, Err: err}
}

// Apply folds a completed fetch into the feed
func (p *Paginator) Apply(res PageResult) PageOutcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || res.Request.epoch != p.epoch || !p.inFlight {
		p.logger.Debug("dropping stale page", "page", res.Request.Page)
		return OutcomeStale
	}

	p.inFlight = false

	if res.Err != nil {
		p.lastErr = res.Err
		if errors.Is(res.Err, context.Canceled) {
			p.logger.Debug("page fetch canceled", "page", res.Request.Page)
		} else {
			p.logger.Error("page fetch failed", "page", res.Request.Page, "error", res.Err)
		}
		return OutcomeFailed
	}

	p.lastErr = nil

	if len(res.Items) == 0 {
		p.exhausted = true
		p.logger.Info("catalog exhausted", "page", res.Request.Page, "items", len(p.items))
		return OutcomeExhausted
	}

	p.items = append(p.items, res.Items...)
	p.nextPage++
	p.logger.Debug("page loaded", "page", res.Request.Page, "count", len(res.Items), "total", len(p.items))
	return OutcomeAppended
}

// RequestMore fetches the next page if appropriate and applies the result.
// Calls made while another fetch is unresolved return OutcomeSkipped.
func (p *Paginator) RequestMore(ctx context.Context) PageOutcome {
	req, ok := p.Begin()
	if !ok {
		return OutcomeSkipped
	}
	return p.Apply(p.Fetch(ctx, req))
}

// Snapshot returns a copy of the feed state
func (p *Paginator) Snapshot() PaginationState {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]domain.PhotoSummary, len(p.items))
	copy(items, p.items)

	return PaginationState{
		Items:     items,
		NextPage:  p.nextPage,
		InFlight:  p.inFlight,
		Exhausted: p.exhausted,
		LastErr:   p.lastErr,
	}
}

// Status returns the counters the scroll monitor reads, without copying items
func (p *Paginator) Status() viewport.FeedStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	return viewport.FeedStatus{
		Count:     len(p.items),
		InFlight:  p.inFlight,
		Exhausted: p.exhausted,
	}
}

// Reset clears the feed back to page 1. Outstanding fetches become stale.
func (p *Paginator) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.epoch++
	p.items = nil
	p.nextPage = 1
	p.inFlight = false
	p.exhausted = false
	p.lastErr = nil
}

// Close ends the feed. Later Begin calls are refused and late results dropped.
func (p *Paginator) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.epoch++
	p.closed = true
	p.inFlight = false
}

// Closed reports whether Close has been called
func (p *Paginator) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

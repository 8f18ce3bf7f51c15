package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/viewport"
)

// DetailStatus is the lifecycle of a detail view
type DetailStatus int

const (
	DetailLoading DetailStatus = iota
	DetailLoaded
	DetailFailed
	DetailNotFound
)

func (s DetailStatus) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	case DetailNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// DetailRequest is issued by DetailSession.Begin
type DetailRequest struct {
	PhotoID string
	epoch   uint64
}

// DetailResult carries a completed detail fetch back to its session
type DetailResult struct {
	Request DetailRequest
	Photo   *domain.PhotoDetail
	Err     error
}

// DetailState is a read-only copy of a detail session
type DetailState struct {
	PhotoID string
	Status  DetailStatus
	Photo   *domain.PhotoDetail // Nil unless Loaded
	Fit     domain.FitDimensions
	Err     error // Set when Failed or NotFound
}

// DetailSession owns one photo's detail and its fit for the current viewport
type DetailSession struct {
	id      string
	photoID string
	repo    domain.CatalogRepository
	logger  *slog.Logger

	mu             sync.Mutex
	viewportWidth  float64
	viewportHeight float64
	status         DetailStatus
	photo          *domain.PhotoDetail
	fit            domain.FitDimensions
	err            error
	inFlight       bool
	epoch          uint64
	closed         bool
}

func newDetailSession(id, photoID string, repo domain.CatalogRepository, vw, vh float64, logger *slog.Logger) *DetailSession {
	return &DetailSession{
		id:             id,
		photoID:        photoID,
		repo:           repo,
		logger:         logger,
		viewportWidth:  vw,
		viewportHeight: vh,
		status:         DetailLoading,
	}
}

// ID returns the session identifier used in logs
func (s *DetailSession) ID() string {
	return s.id
}

// PhotoID returns the photo this session shows
func (s *DetailSession) PhotoID() string {
	return s.photoID
}

// Begin starts a fetch. Allowed while loading or after a failure; refused once
// loaded, while a fetch is outstanding, or after Close.
func (s *DetailSession) Begin() (DetailRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.inFlight || s.status == DetailLoaded {
		return DetailRequest{}, false
	}

	s.inFlight = true
	s.status = DetailLoading
	s.err = nil
	return DetailRequest{PhotoID: s.photoID, epoch: s.epoch}, true
}

// Fetch performs the remote call; safe off the event loop
func (s *DetailSession) Fetch(ctx context.Context, req DetailRequest) DetailResult {
	photo, err := s.repo.GetPhoto(ctx, req.PhotoID)
	return DetailResult{Request: req, Photo: photo, Err: err}
}

// Apply folds a completed fetch into the session. Returns false for results
// that arrived after Close.
func (s *DetailSession) Apply(res DetailResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || res.Request.epoch != s.epoch || !s.inFlight {
		s.logger.Debug("dropping stale detail")
		return false
	}
	s.inFlight = false

	switch {
	case errors.Is(res.Err, domain.ErrNotFound):
		s.status = DetailNotFound
		s.err = res.Err
		s.logger.Info("photo not found")
		return true
	case res.Err != nil:
		s.status = DetailFailed
		s.err = res.Err
		s.logger.Error("detail fetch failed", "error", res.Err)
		return true
	case res.Photo == nil:
		s.status = DetailNotFound
		s.err = domain.ErrNotFound
		return true
	}

	fit, err := viewport.ComputeFit(
		float64(res.Photo.IntrinsicWidth),
		float64(res.Photo.IntrinsicHeight),
		s.viewportWidth,
		s.viewportHeight,
	)
	if err != nil {
		s.status = DetailFailed
		s.err = fmt.Errorf("photo %s: %w", s.photoID, err)
		s.logger.Warn("cannot size photo", "width", res.Photo.IntrinsicWidth, "height", res.Photo.IntrinsicHeight)
		return true
	}

	s.status = DetailLoaded
	s.photo = res.Photo
	s.fit = fit
	s.err = nil
	return true
}

// Load runs Begin, Fetch and Apply synchronously and returns the final state
func (s *DetailSession) Load(ctx context.Context) DetailState {
	if req, ok := s.Begin(); ok {
		s.Apply(s.Fetch(ctx, req))
	}
	return s.Snapshot()
}

// Resize recomputes the fit for a new viewport
func (s *DetailSession) Resize(viewportWidth, viewportHeight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewportWidth = viewportWidth
	s.viewportHeight = viewportHeight

	if s.status != DetailLoaded || s.photo == nil {
		return
	}

	fit, err := viewport.ComputeFit(
		float64(s.photo.IntrinsicWidth),
		float64(s.photo.IntrinsicHeight),
		viewportWidth,
		viewportHeight,
	)
	if err != nil {
		return
	}
	s.fit = fit
}

// Snapshot returns the session state for rendering
func (s *DetailSession) Snapshot() DetailState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return DetailState{
		PhotoID: s.photoID,
		Status:  s.status,
		Photo:   s.photo,
		Fit:     s.fit,
		Err:     s.err,
	}
}

// Close ends the session; late results are dropped
func (s *DetailSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.closed = true
	s.inFlight = false
}

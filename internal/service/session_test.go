package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/viewport"
)

func newTestSession(repo *fakeCatalog, mode domain.LayoutMode) *GallerySession {
	svc := NewGalleryService(repo, 20, nil)
	return svc.NewGallerySession(mode, 1280)
}

// run completes a request the way the event loop does
func run(t *testing.T, s *GallerySession, req PageRequest) PageOutcome {
	t.Helper()
	return s.Apply(s.Fetch(context.Background(), req))
}

func TestSessionIDIsUUID(t *testing.T) {
	s := newTestSession(newFakeCatalog(), domain.LayoutUniform)
	_, err := uuid.Parse(s.ID())
	assert.NoError(t, err)
}

func TestMountBootstrapsExactlyOnce(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 4)
	s := newTestSession(repo, domain.LayoutUniform)

	req, ok := s.Mount()
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.True(t, s.Bootstrapped())

	// Re-renders before and after the fetch resolves
	_, ok = s.Mount()
	assert.False(t, ok)
	run(t, s, req)
	_, ok = s.Mount()
	assert.False(t, ok)

	assert.Equal(t, []int{1}, repo.Calls())
}

func TestScrollTriggersNextPage(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 4)
	repo.pages[2] = page("p2", 4)
	s := newTestSession(repo, domain.LayoutUniform)

	req, _ := s.Mount()

	// No items yet: scrolling never fetches
	_, ok := s.OnScroll(viewport.ScrollPosition{ScrollTop: 0, ViewportHeight: 500, DocumentHeight: 500})
	assert.False(t, ok)

	require.Equal(t, OutcomeAppended, run(t, s, req))

	// 200px from the bottom is outside the uniform trigger
	_, ok = s.OnScroll(viewport.ScrollPosition{ScrollTop: 300, ViewportHeight: 500, DocumentHeight: 1000})
	assert.False(t, ok)

	req, ok = s.OnScroll(viewport.ScrollPosition{ScrollTop: 420, ViewportHeight: 500, DocumentHeight: 1000})
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)

	// Further events while in flight are absorbed by the guard
	_, ok = s.OnScroll(viewport.ScrollPosition{ScrollTop: 500, ViewportHeight: 500, DocumentHeight: 1000})
	assert.False(t, ok)

	require.Equal(t, OutcomeAppended, run(t, s, req))
	assert.Equal(t, []int{1, 2}, repo.Calls())
}

func TestNoFetchAfterExhaustion(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 2)
	s := newTestSession(repo, domain.LayoutUniform)

	req, _ := s.Mount()
	run(t, s, req)

	req, ok := s.Retry()
	require.True(t, ok)
	require.Equal(t, OutcomeExhausted, run(t, s, req))

	bottom := viewport.ScrollPosition{ScrollTop: 500, ViewportHeight: 500, DocumentHeight: 1000}
	for i := 0; i < 10; i++ {
		_, ok := s.OnScroll(bottom)
		assert.False(t, ok)
	}
	_, ok = s.Retry()
	assert.False(t, ok)
	s.SetMode(domain.LayoutPacked)
	_, ok = s.OnScroll(bottom)
	assert.False(t, ok)

	assert.Equal(t, []int{1, 2}, repo.Calls())
}

func TestModeSwitchLeavesFeedUntouched(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 6)
	s := newTestSession(repo, domain.LayoutUniform)

	req, _ := s.Mount()
	run(t, s, req)
	before := s.Snapshot()

	s.SetMode(domain.LayoutPacked)
	assert.Equal(t, domain.LayoutPacked, s.Mode())
	assert.Equal(t, domain.LayoutUniform, s.ToggleMode())

	after := s.Snapshot()
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.NextPage, after.NextPage)
	assert.Equal(t, []int{1}, repo.Calls())
}

func TestModeSwitchReevaluatesThreshold(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 6)
	repo.pages[2] = page("p2", 6)
	s := newTestSession(repo, domain.LayoutUniform)

	req, _ := s.Mount()
	run(t, s, req)

	// 300px left: too far for uniform, inside the packed margin
	pos := viewport.ScrollPosition{ScrollTop: 700, ViewportHeight: 500, DocumentHeight: 1500}
	_, ok := s.OnScroll(pos)
	require.False(t, ok)

	assert.Equal(t, domain.LayoutPacked, s.ToggleMode())
	assert.Equal(t, []int{1}, repo.Calls(), "switching alone never fetches")

	// The re-laid-out view reports its own position
	req, ok = s.OnScroll(pos)
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
}

func TestModeSwitchIgnoresPositionFromOldLayout(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 6)
	repo.pages[2] = page("p2", 6)
	s := newTestSession(repo, domain.LayoutUniform)

	req, _ := s.Mount()
	run(t, s, req)

	// 288px left in the uniform grid
	_, ok := s.OnScroll(viewport.ScrollPosition{ScrollTop: 0, ViewportHeight: 608, DocumentHeight: 896})
	require.False(t, ok)

	// Packed tiles are taller; the same scroll top is now 2528px from the end
	s.SetMode(domain.LayoutPacked)
	_, ok = s.OnScroll(viewport.ScrollPosition{ScrollTop: 0, ViewportHeight: 608, DocumentHeight: 3136})
	assert.False(t, ok)
	assert.Equal(t, []int{1}, repo.Calls())
}

func TestResizeUpdatesColumns(t *testing.T) {
	s := newTestSession(newFakeCatalog(), domain.LayoutPacked)
	assert.Equal(t, 4, s.ColumnCount())

	s.Resize(700)
	assert.Equal(t, 2, s.ColumnCount())
	s.Resize(300)
	assert.Equal(t, 1, s.ColumnCount())
}

func TestUnmountReleasesAndDropsLateResults(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 3)
	s := newTestSession(repo, domain.LayoutUniform)

	req, ok := s.Mount()
	require.True(t, ok)
	res := s.Fetch(context.Background(), req)

	s.Unmount()
	assert.False(t, s.Mounted())
	assert.Equal(t, OutcomeStale, s.Apply(res))
	assert.Empty(t, s.Snapshot().Items)

	_, ok = s.OnScroll(viewport.ScrollPosition{ScrollTop: 1000, ViewportHeight: 10, DocumentHeight: 10})
	assert.False(t, ok)
	_, ok = s.Retry()
	assert.False(t, ok)
	_, ok = s.Mount()
	assert.False(t, ok, "a closed session cannot be remounted")
}

func TestFailedBootstrapRetriesSamePage(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 3)
	repo.fail[1] = 1
	s := newTestSession(repo, domain.LayoutUniform)

	req, _ := s.Mount()
	assert.Equal(t, OutcomeFailed, run(t, s, req))
	assert.ErrorIs(t, s.Snapshot().LastErr, domain.ErrNetworkFailure)

	// The scroll monitor needs items, so the list view offers a manual retry
	req, ok := s.Retry()
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, OutcomeAppended, run(t, s, req))
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/shutter/internal/domain"
)

func TestNewPaginatorDefaults(t *testing.T) {
	p := NewPaginator(newFakeCatalog(), 0, nil)
	assert.Equal(t, DefaultPageSize, p.PerPage())

	p = NewPaginator(newFakeCatalog(), 500, nil)
	assert.Equal(t, MaxPageSize, p.PerPage())

	s := p.Snapshot()
	assert.Equal(t, 1, s.NextPage)
	assert.Empty(t, s.Items)
	assert.False(t, s.InFlight)
	assert.False(t, s.Exhausted)
}

func TestRequestMoreAppendsInOrder(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 3)
	repo.pages[2] = page("p2", 2)
	repo.pages[3] = page("p3", 4)

	p := NewPaginator(repo, 20, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.Equal(t, OutcomeAppended, p.RequestMore(ctx))
	}

	want := append(append(ids(page("p1", 3)), ids(page("p2", 2))...), ids(page("p3", 4))...)
	s := p.Snapshot()
	assert.Equal(t, want, ids(s.Items))
	assert.Equal(t, 4, s.NextPage)
	assert.Equal(t, []int{1, 2, 3}, repo.Calls())
}

func TestRequestMoreIsIdempotentWhileInFlight(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 5)
	repo.gate = make(chan struct{})
	repo.started = make(chan struct{}, 1)

	p := NewPaginator(repo, 20, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	var first PageOutcome
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = p.RequestMore(ctx)
	}()

	select {
	case <-repo.started:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never started")
	}

	assert.True(t, p.Snapshot().InFlight)
	assert.Equal(t, OutcomeSkipped, p.RequestMore(ctx))
	assert.Equal(t, OutcomeSkipped, p.RequestMore(ctx))

	close(repo.gate)
	wg.Wait()

	assert.Equal(t, OutcomeAppended, first)
	assert.Equal(t, []int{1}, repo.Calls())
	assert.Len(t, p.Snapshot().Items, 5)
}

func TestBeginGuard(t *testing.T) {
	p := NewPaginator(newFakeCatalog(), 20, nil)

	req, ok := p.Begin()
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PerPage)

	_, ok = p.Begin()
	assert.False(t, ok, "second Begin while in flight")
}

func TestEmptyPageExhausts(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 2)

	p := NewPaginator(repo, 20, nil)
	ctx := context.Background()

	require.Equal(t, OutcomeAppended, p.RequestMore(ctx))
	before := p.Snapshot()

	assert.Equal(t, OutcomeExhausted, p.RequestMore(ctx))
	after := p.Snapshot()

	assert.True(t, after.Exhausted)
	assert.False(t, after.InFlight)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.NextPage, after.NextPage)
}

func TestExhaustionIsMonotonic(t *testing.T) {
	repo := newFakeCatalog()
	p := NewPaginator(repo, 20, nil)
	ctx := context.Background()

	require.Equal(t, OutcomeExhausted, p.RequestMore(ctx))

	// Pages appearing later upstream must not revive the feed
	repo.pages[1] = page("late", 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, OutcomeSkipped, p.RequestMore(ctx))
		_, ok := p.Begin()
		assert.False(t, ok)
	}

	assert.Equal(t, []int{1}, repo.Calls())
	assert.True(t, p.Snapshot().Exhausted)
}

func TestRetryAfterFailureRequestsSamePage(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 2)
	repo.pages[2] = page("p2", 2)
	repo.fail[2] = 1

	p := NewPaginator(repo, 20, nil)
	ctx := context.Background()

	require.Equal(t, OutcomeAppended, p.RequestMore(ctx))
	before := p.Snapshot()

	assert.Equal(t, OutcomeFailed, p.RequestMore(ctx))
	failed := p.Snapshot()
	assert.Equal(t, before.NextPage, failed.NextPage)
	assert.Equal(t, before.Items, failed.Items)
	assert.False(t, failed.InFlight)
	assert.False(t, failed.Exhausted)
	assert.ErrorIs(t, failed.LastErr, domain.ErrNetworkFailure)

	assert.Equal(t, OutcomeAppended, p.RequestMore(ctx))
	assert.Equal(t, []int{1, 2, 2}, repo.Calls())
	assert.NoError(t, p.Snapshot().LastErr)
	assert.Len(t, p.Snapshot().Items, 4)
}

func TestDuplicatesAcrossPagesAreKept(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("same", 2)
	repo.pages[2] = page("same", 2)

	p := NewPaginator(repo, 20, nil)
	ctx := context.Background()
	p.RequestMore(ctx)
	p.RequestMore(ctx)

	assert.Equal(t, []string{"same-0", "same-1", "same-0", "same-1"}, ids(p.Snapshot().Items))
}

func TestCloseDropsLateResults(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 3)

	p := NewPaginator(repo, 20, nil)
	req, ok := p.Begin()
	require.True(t, ok)

	res := p.Fetch(context.Background(), req)
	p.Close()

	assert.Equal(t, OutcomeStale, p.Apply(res))
	assert.Empty(t, p.Snapshot().Items)

	_, ok = p.Begin()
	assert.False(t, ok, "closed feed refuses new fetches")
	assert.True(t, p.Closed())
}

func TestResetInvalidatesOutstandingFetch(t *testing.T) {
	repo := newFakeCatalog()

	p := NewPaginator(repo, 20, nil)
	ctx := context.Background()

	require.Equal(t, OutcomeExhausted, p.RequestMore(ctx), "page 1 empty at first")
	repo.pages[1] = page("p1", 3)

	_, ok := p.Begin()
	assert.False(t, ok)

	p.Reset()
	s := p.Snapshot()
	assert.False(t, s.Exhausted)
	assert.Equal(t, 1, s.NextPage)

	req, ok := p.Begin()
	require.True(t, ok)
	stale := p.Fetch(ctx, req)

	p.Reset()
	assert.Equal(t, OutcomeStale, p.Apply(stale))
	assert.Equal(t, OutcomeAppended, p.RequestMore(ctx))
}

func TestSnapshotIsACopy(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 2)

	p := NewPaginator(repo, 20, nil)
	p.RequestMore(context.Background())

	s := p.Snapshot()
	s.Items[0].ID = "mutated"
	assert.Equal(t, "p1-0", p.Snapshot().Items[0].ID)
}

func TestLoadPages(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 2)
	repo.pages[2] = page("p2", 1)

	p := NewPaginator(repo, 20, nil)

	var seen []int
	var got []string
	err := LoadPages(context.Background(), p, 0, func(n int, items []domain.PhotoSummary) {
		seen = append(seen, n)
		got = append(got, ids(items)...)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, []string{"p1-0", "p1-1", "p2-0"}, got)
	assert.True(t, p.Snapshot().Exhausted)
}

func TestLoadPagesLimitAndFailure(t *testing.T) {
	repo := newFakeCatalog()
	repo.pages[1] = page("p1", 2)
	repo.pages[2] = page("p2", 2)
	repo.pages[3] = page("p3", 2)

	p := NewPaginator(repo, 20, nil)
	require.NoError(t, LoadPages(context.Background(), p, 2, nil))
	assert.Equal(t, []int{1, 2}, repo.Calls())

	repo.fail[3] = 1
	err := LoadPages(context.Background(), p, 0, nil)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/shutter/internal/domain"
)

// fakeCatalog serves scripted pages and records every call
type fakeCatalog struct {
	mu      sync.Mutex
	pages   map[int][]domain.PhotoSummary
	fail    map[int]int // page -> remaining failures
	photos  map[string]*domain.PhotoDetail
	calls   []int
	gate    chan struct{} // when set, ListPhotos blocks until closed
	started chan struct{} // receives once per ListPhotos call when set
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		pages:  make(map[int][]domain.PhotoSummary),
		fail:   make(map[int]int),
		photos: make(map[string]*domain.PhotoDetail),
	}
}

func (f *fakeCatalog) ListPhotos(ctx context.Context, page, perPage int) ([]domain.PhotoSummary, error) {
	f.mu.Lock()
	f.calls = append(f.calls, page)
	gate, started := f.gate, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail[page] > 0 {
		f.fail[page]--
		return nil, fmt.Errorf("%w: connection reset", domain.ErrNetworkFailure)
	}
	return f.pages[page], nil
}

func (f *fakeCatalog) GetPhoto(ctx context.Context, id string) (*domain.PhotoDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.photos[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalog) Calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.calls))
	copy(out, f.calls)
	return out
}

// page builds n summaries with ids "<prefix>-<i>"
func page(prefix string, n int) []domain.PhotoSummary {
	out := make([]domain.PhotoSummary, n)
	for i := range out {
		out[i] = domain.PhotoSummary{
			ID:         fmt.Sprintf("%s-%d", prefix, i),
			AuthorName: "author " + prefix,
		}
	}
	return out
}

func ids(items []domain.PhotoSummary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

package service

import (
	"context"

	"github.com/mmcdole/shutter/internal/domain"
)

// LoadPages drives RequestMore until maxPages pages were appended, the catalog
// is exhausted, or ctx ends. onPage sees each appended page.
// A failed page aborts with its error; maxPages <= 0 means no limit.
func LoadPages(
	ctx context.Context,
	p *Paginator,
	maxPages int,
	onPage func(page int, items []domain.PhotoSummary),
) error {
	loaded := 0

	for maxPages <= 0 || loaded < maxPages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		before := p.Snapshot()
		switch p.RequestMore(ctx) {
		case OutcomeAppended:
			loaded++
			if onPage != nil {
				after := p.Snapshot()
				onPage(before.NextPage, after.Items[len(before.Items):])
			}
		case OutcomeFailed:
			return p.Snapshot().LastErr
		default:
			return nil
		}
	}

	return nil
}

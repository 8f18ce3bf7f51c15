package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/service"
)

func TestFrameSizeInCells(t *testing.T) {
	d := NewDetail(Metrics{CellWidthPx: 8, CellHeightPx: 16})
	d.SetSize(160, 50)
	d.SetState(service.DetailState{
		PhotoID: "abc",
		Status:  service.DetailLoaded,
		Photo: &domain.PhotoDetail{
			ID:              "abc",
			AuthorName:      "Ann",
			AuthorHandle:    "ann",
			FullURL:         "https://example.test/full.jpg",
			IntrinsicWidth:  4000,
			IntrinsicHeight: 2000,
		},
		Fit: domain.FitDimensions{DisplayWidth: 1200, DisplayHeight: 600},
	})

	cols, rows := d.FrameSize()
	assert.Equal(t, 150, cols)
	assert.Equal(t, 38, rows)

	view := d.View()
	assert.Contains(t, view, "By Ann (@ann)")
	assert.Contains(t, view, "4000×2000")
}

func TestDetailStatusViews(t *testing.T) {
	d := NewDetail(Metrics{})
	d.SetSize(80, 24)

	d.SetState(service.DetailState{PhotoID: "abc", Status: service.DetailLoading})
	assert.Contains(t, d.View(), "Loading photo abc")

	d.SetState(service.DetailState{PhotoID: "abc", Status: service.DetailNotFound})
	assert.Contains(t, d.View(), "Photo not found")

	d.SetState(service.DetailState{PhotoID: "abc", Status: service.DetailFailed, Err: domain.ErrNetworkFailure})
	assert.Contains(t, d.View(), "Could not load photo")
	assert.Contains(t, d.View(), "r to retry")
}

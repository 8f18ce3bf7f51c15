package viewport

import (
	"fmt"
	"math"

	"github.com/mmcdole/shutter/internal/domain"
)

// Detail view bounds
const (
	FitWidthFraction  = 0.9  // share of viewport width the photo may use
	FitHeightFraction = 0.7  // share of viewport height the photo may use
	FitMaxWidth       = 1200 // absolute cap in pixels
)

// ComputeFit sizes a photo for the detail view, preserving its aspect ratio
// within min(viewportWidth*0.9, 1200) by viewportHeight*0.7.
// It is a pure function; callers re-invoke it whenever either size changes.
func ComputeFit(intrinsicWidth, intrinsicHeight, viewportWidth, viewportHeight float64) (domain.FitDimensions, error) {
	if !positive(intrinsicWidth) || !positive(intrinsicHeight) {
		return domain.FitDimensions{}, fmt.Errorf("%w: %vx%v", domain.ErrInvalidDimensions, intrinsicWidth, intrinsicHeight)
	}

	maxWidth := math.Min(math.Max(viewportWidth, 0)*FitWidthFraction, FitMaxWidth)
	maxHeight := math.Max(viewportHeight, 0) * FitHeightFraction
	aspectRatio := intrinsicWidth / intrinsicHeight

	width := maxWidth
	height := width / aspectRatio
	if height > maxHeight {
		height = maxHeight
		width = height * aspectRatio
	}

	return domain.FitDimensions{DisplayWidth: width, DisplayHeight: height}, nil
}

// positive rejects zero, negatives, NaN and infinities
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

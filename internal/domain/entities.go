package domain

import (
	"fmt"
	"strings"
)

// PhotoSummary is a single tile in the gallery list. Immutable once fetched.
type PhotoSummary struct {
	ID           string // Catalog-unique identifier
	ThumbnailURL string // Small rendition used for list tiles
	AuthorName   string // Display name of the photographer
	PageURL      string // Public web page for the photo (may be empty)

	// Intrinsic size in pixels (0 if the catalog did not report it).
	// Only the packed layout reads these to size tiles.
	Width  int
	Height int

	// Dominant color hint as "#RRGGBB" (empty if unknown)
	Color string
}

// AspectRatio returns width/height, or 1 when the intrinsic size is unknown
func (p PhotoSummary) AspectRatio() float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return 1
	}
	return float64(p.Width) / float64(p.Height)
}

// Caption returns the tile caption shown under every thumbnail
func (p PhotoSummary) Caption() string {
	return "By " + p.AuthorName
}

// PhotoDetail is fetched fresh for every detail view and owned by that view's session
type PhotoDetail struct {
	ID              string
	FullURL         string // Full-resolution rendition
	PageURL         string // Public web page for the photo (may be empty)
	AuthorName      string
	AuthorHandle    string // Username on the catalog (may be empty)
	Title           string // Empty when the catalog has none
	Description     string // Empty when the catalog has none
	IntrinsicWidth  int
	IntrinsicHeight int
}

// DisplayTitle returns the heading for the detail view
func (d PhotoDetail) DisplayTitle() string {
	if strings.TrimSpace(d.Title) != "" {
		return d.Title
	}
	return "Untitled"
}

// DisplayDescription returns the body text for the detail view
func (d PhotoDetail) DisplayDescription() string {
	if strings.TrimSpace(d.Description) != "" {
		return d.Description
	}
	return "No description available."
}

// Resolution returns "W×H" for the intrinsic size
func (d PhotoDetail) Resolution() string {
	return fmt.Sprintf("%d×%d", d.IntrinsicWidth, d.IntrinsicHeight)
}

// FitDimensions is the on-screen size of a photo in the detail view
type FitDimensions struct {
	DisplayWidth  float64
	DisplayHeight float64
}

package domain

import (
	"context"
)

// CatalogRepository provides read access to a paginated remote photo catalog
type CatalogRepository interface {
	// ListPhotos returns page `page` (1-based) of at most perPage photos.
	// An empty slice with a nil error means there are no more pages.
	ListPhotos(ctx context.Context, page, perPage int) ([]PhotoSummary, error)

	// GetPhoto returns the full record for one photo
	GetPhoto(ctx context.Context, id string) (*PhotoDetail, error)
}

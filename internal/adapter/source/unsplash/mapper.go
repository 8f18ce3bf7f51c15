package unsplash

import (
	"github.com/mmcdole/shutter/internal/domain"
)

// MapSummary converts a list entry into a gallery tile
func MapSummary(p photoDTO) domain.PhotoSummary {
	thumb := p.URLs.Small
	if thumb == "" {
		thumb = p.URLs.Thumb
	}
	return domain.PhotoSummary{
		ID:           p.ID,
		ThumbnailURL: thumb,
		AuthorName:   authorName(p.User),
		PageURL:      p.Links.HTML,
		Width:        p.Width,
		Height:       p.Height,
		Color:        p.Color,
	}
}

// MapSummaries converts a page of list entries, preserving order
func MapSummaries(photos []photoDTO) []domain.PhotoSummary {
	out := make([]domain.PhotoSummary, 0, len(photos))
	for _, p := range photos {
		if p.ID == "" {
			continue
		}
		out = append(out, MapSummary(p))
	}
	return out
}

// MapDetail converts a single-photo response
func MapDetail(p photoDTO) *domain.PhotoDetail {
	full := p.URLs.Full
	if full == "" {
		full = p.URLs.Raw
	}

	// Title falls back to the alt text; the description does not
	description := deref(p.Description)
	title := description
	if title == "" {
		title = deref(p.AltDescription)
	}

	return &domain.PhotoDetail{
		ID:              p.ID,
		FullURL:         full,
		PageURL:         p.Links.HTML,
		AuthorName:      authorName(p.User),
		AuthorHandle:    p.User.Username,
		Title:           title,
		Description:     description,
		IntrinsicWidth:  p.Width,
		IntrinsicHeight: p.Height,
	}
}

func authorName(u userDTO) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "Unknown"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package tui

import (
	"net/url"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RouteKind identifies which view a route renders
type RouteKind int

const (
	RouteList RouteKind = iota
	RouteDetail
	RouteNotFound
)

// Route is a parsed navigation target
type Route struct {
	Kind    RouteKind
	PhotoID string // Set for RouteDetail
	Path    string // Original path, kept for the not-found view
}

const photosSegment = "photos"

// ListRoute returns the gallery route
func ListRoute() Route {
	return Route{Kind: RouteList, Path: "/"}
}

// DetailRoute returns the route for one photo
func DetailRoute(id string) Route {
	return Route{Kind: RouteDetail, PhotoID: id, Path: "/photos/" + url.PathEscape(id)}
}

// ParseRoute maps a path onto a route. "/" and "/photos" list the gallery,
// "/photos/{id}" shows one photo, and anything else is not found.
func ParseRoute(path string) Route {
	raw := path
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	segments := splitPath(path)
	switch {
	case len(segments) == 0:
		return ListRoute()
	case len(segments) == 1 && segments[0] == photosSegment:
		return ListRoute()
	case len(segments) == 2 && segments[0] == photosSegment:
		id, err := url.PathUnescape(segments[1])
		if err != nil || strings.TrimSpace(id) == "" {
			break
		}
		return DetailRoute(id)
	}

	return Route{Kind: RouteNotFound, Path: raw}
}

func splitPath(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SuggestRoute returns the closest known route for a mistyped path, or ""
func SuggestRoute(path string) string {
	segments := splitPath(strings.ToLower(path))
	if len(segments) == 0 {
		return ""
	}

	// "/photo/abc", "/pics/abc" and friends keep their id
	if len(segments) == 2 && closeTo(segments[0], photosSegment) {
		return "/" + photosSegment + "/" + segments[1]
	}
	if len(segments) == 1 && closeTo(segments[0], photosSegment) {
		return "/" + photosSegment
	}
	return ""
}

// closeTo reports whether word is a plausible misspelling of target
func closeTo(word, target string) bool {
	if len(word) < 3 {
		return false
	}
	ranks := fuzzy.RankFindFold(word, []string{target})
	if len(ranks) > 0 {
		return ranks[0].Distance <= len(target)
	}
	return fuzzy.LevenshteinDistance(word, target) <= 2
}

package tui

import (
	"github.com/mmcdole/shutter/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg signals that a page fetch finished. Session identifies the
// feed that issued it so late results for a closed session are dropped.
type PageLoadedMsg struct {
	Session *service.GallerySession
	Result  service.PageResult
}

// DetailLoadedMsg signals that a detail fetch finished
type DetailLoadedMsg struct {
	Session *service.DetailSession
	Result  service.DetailResult
}

// PhotoOpenedMsg signals that a photo page was handed to the browser
type PhotoOpenedMsg struct {
	URL string
}

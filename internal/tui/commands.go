package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/shutter/internal/service"
)

// Command factories for async operations

const defaultFetchTimeout = 30 * time.Second

// FetchPageCmd runs one page request for a gallery session
func FetchPageCmd(s *service.GallerySession, req service.PageRequest, timeout time.Duration) tea.Cmd {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return PageLoadedMsg{Session: s, Result: s.Fetch(ctx, req)}
	}
}

// FetchDetailCmd runs the detail request for a detail session
func FetchDetailCmd(s *service.DetailSession, req service.DetailRequest, timeout time.Duration) tea.Cmd {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return DetailLoadedMsg{Session: s, Result: s.Fetch(ctx, req)}
	}
}

// OpenURLCmd hands a URL to the system browser
func OpenURLCmd(opener Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return PhotoOpenedMsg{URL: url}
	}
}

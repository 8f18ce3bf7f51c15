package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens photo pages in an external viewer (normally the web browser)
type Launcher struct {
	command string   // configured opener command, empty for detection
	args    []string // extra arguments placed before the URL
	logger  *slog.Logger

	// Process hooks, replaced in tests
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// openPath defines a single way to hand a URL to the OS
type openPath struct {
	command string
	args    []string // arguments placed before the URL
}

// candidateOpeners defines the preferred opener order for each platform
var candidateOpeners = map[string][]openPath{
	"darwin": {
		{command: "open"},
	},
	"linux": {
		{command: "xdg-open"},
		{command: "sensible-browser"},
		{command: "gio", args: []string{"open"}},
		{command: "wslview"},
	},
	"windows": {
		{command: "cmd", args: []string{"/c", "start", ""}},
		{command: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
	},
}

// NewLauncher creates a Launcher. An empty command means auto-detect.
func NewLauncher(command string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	fields := strings.Fields(command)
	l := &Launcher{
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
	if len(fields) > 0 {
		l.command = fields[0]
		l.args = fields[1:]
	}
	return l
}

// startDetached starts a process without waiting for it; browsers outlive us
func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open hands a URL to the configured opener or the first available candidate
func (l *Launcher) Open(url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}

	// Tier 1: user configured a specific command
	if l.command != "" {
		l.logger.Info("opening with configured command", "command", l.command, "url", url)
		args := append(append([]string{}, l.args...), url)
		if err := l.start(l.command, args...); err != nil {
			return fmt.Errorf("failed to run %s: %w", l.command, err)
		}
		return nil
	}

	// Tier 2: platform candidates in order
	candidates, ok := candidateOpeners[runtime.GOOS]
	if !ok {
		candidates = candidateOpeners["linux"]
	}
	for _, c := range candidates {
		if _, err := l.lookPath(c.command); err != nil {
			l.logger.Debug("opener not available", "command", c.command, "error", err)
			continue
		}
		args := append(append([]string{}, c.args...), url)
		if err := l.start(c.command, args...); err != nil {
			l.logger.Debug("opener failed", "command", c.command, "error", err)
			continue
		}
		l.logger.Info("opened url", "command", c.command, "url", url)
		return nil
	}

	return fmt.Errorf("no opener found for %s", runtime.GOOS)
}

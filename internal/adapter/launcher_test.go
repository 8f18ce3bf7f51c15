package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedStart struct {
	name string
	args []string
}

func newTestLauncher(command string, available map[string]bool, calls *[]recordedStart) *Launcher {
	l := NewLauncher(command, NullLogger())
	l.lookPath = func(file string) (string, error) {
		if available[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
	l.start = func(name string, args ...string) error {
		*calls = append(*calls, recordedStart{name: name, args: args})
		return nil
	}
	return l
}

func TestLauncherUsesConfiguredCommand(t *testing.T) {
	var calls []recordedStart
	l := newTestLauncher("firefox --new-tab", nil, &calls)

	require.NoError(t, l.Open("https://example.com/p/1"))
	require.Len(t, calls, 1)
	assert.Equal(t, "firefox", calls[0].name)
	assert.Equal(t, []string{"--new-tab", "https://example.com/p/1"}, calls[0].args)
}

func TestLauncherRejectsEmptyURL(t *testing.T) {
	var calls []recordedStart
	l := newTestLauncher("firefox", nil, &calls)

	assert.Error(t, l.Open(""))
	assert.Empty(t, calls)
}

func TestLauncherFailsWhenNothingAvailable(t *testing.T) {
	var calls []recordedStart
	l := newTestLauncher("", map[string]bool{}, &calls)

	assert.Error(t, l.Open("https://example.com"))
	assert.Empty(t, calls)
}

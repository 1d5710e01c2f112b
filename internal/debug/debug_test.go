package debug

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogIsSilentWhenDisabled(t *testing.T) {
	Close()
	assert.False(t, IsEnabled())
	Log("nothing %d", 1)
	Timed("noop")()
	l := Logger("x")
	l.Info().Msg("discarded")
}

func TestEnableWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Enable("", Options{Writer: &buf}))
	defer Close()

	assert.True(t, IsEnabled())
	Log("button clicked %d", 3)
	l := Logger("compose")
	l.Debug().Str("scope", "remember/transient").Msg("run")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "button clicked 3", entry["message"])

	require.NoError(t, json.Unmarshal([]byte(lines[2]), &entry))
	assert.Equal(t, "compose", entry["component"])
	assert.Equal(t, "remember/transient", entry["scope"])
}

func TestEnableRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Enable("", Options{Writer: &buf, Level: "warn"}))
	defer Close()

	Log("hidden")
	assert.Empty(t, strings.TrimSpace(buf.String()))
}

func TestEnableRejectsUnknownLevel(t *testing.T) {
	err := Enable("", Options{Writer: &bytes.Buffer{}, Level: "loud"})
	assert.Error(t, err)
	assert.False(t, IsEnabled())
}

func TestEnableCreatesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gallery.log")
	require.NoError(t, Enable(path, Options{MaxSizeMB: 1}))
	Log("hello")
	Close()
	assert.FileExists(t, path)
}

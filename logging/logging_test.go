package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedUntilSetOutput(t *testing.T) {
	require.NoError(t, Init(true, "INFO", "text", ""))

	slog.Info("held back")

	var out bytes.Buffer
	require.NoError(t, SetOutput(&out))
	assert.Contains(t, out.String(), "held back")

	// After SetOutput, records go straight through.
	slog.Info("live now")
	assert.Contains(t, out.String(), "live now")
}

func TestLevelFiltering(t *testing.T) {
	require.NoError(t, Init(true, "WARN", "text", ""))

	slog.Info("too quiet")
	slog.Warn("loud enough")

	var out bytes.Buffer
	require.NoError(t, SetOutput(&out))
	assert.NotContains(t, out.String(), "too quiet")
	assert.Contains(t, out.String(), "loud enough")
}

func TestJSONFormat(t *testing.T) {
	require.NoError(t, Init(true, "INFO", "json", ""))

	slog.Info("structured", "answer", 42)

	var out bytes.Buffer
	require.NoError(t, SetOutput(&out))
	assert.Contains(t, out.String(), `"answer":42`)
}

func TestLogfileMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goshift.log")
	require.NoError(t, Init(true, "INFO", "text", path))

	slog.Info("to the file")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to the file"))
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	require.NoError(t, Init(true, "CHATTY", "text", ""))

	slog.Debug("filtered")
	slog.Info("kept")

	var out bytes.Buffer
	require.NoError(t, SetOutput(&out))
	assert.NotContains(t, out.String(), "filtered")
	assert.Contains(t, out.String(), "kept")
}

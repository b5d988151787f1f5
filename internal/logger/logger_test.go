package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestSetupWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Level: "info", Writer: &buf})
	require.NoError(t, err)
	defer cleanup()

	L().Debug("hidden")
	L().Info("tool.call", "tool", "unit_convert")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "tool.call", rec["msg"])
	assert.Equal(t, "unit_convert", rec["tool"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Level: "error", Writer: &buf})
	require.NoError(t, err)
	defer cleanup()

	L().Info("before")
	assert.Empty(t, buf.String())

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, slog.LevelDebug, Level())
	L().Info("after")
	assert.Contains(t, buf.String(), "after")

	assert.Error(t, SetLevel("nope"))
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	cleanup, err := Setup(Config{Level: "info", File: path})
	require.NoError(t, err)

	L().Info("to.file")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to.file")
}

func TestSetupBadLevel(t *testing.T) {
	_, err := Setup(Config{Level: "verbose"})
	assert.Error(t, err)
}

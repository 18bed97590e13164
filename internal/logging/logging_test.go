package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/repopulse/internal/logging"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), "line: %s", line)
		out = append(out, m)
	}
	return out
}

func TestLogrusLogger_WritesJSONWithComponentAndFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logging.NewLogger(&buf, "info", "controller")

	l.Info("analysis committed", logging.Field{Key: "repo", Value: "facebook/react"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "analysis committed", lines[0]["msg"])
	assert.Equal(t, "controller", lines[0]["component"])
	assert.Equal(t, "facebook/react", lines[0]["repo"])
	assert.Equal(t, "info", lines[0]["level"])
}

func TestLogrusLogger_RespectsLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logging.NewLogger(&buf, "warn", "")

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["msg"])
}

func TestLogrusLogger_WithKeepsParentFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logging.NewLogger(&buf, "debug", "server").With(logging.Field{Key: "subscriber", Value: "abc"})

	l.Debug("sent state")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "server", lines[0]["component"])
	assert.Equal(t, "abc", lines[0]["subscriber"])
}

func TestLogrusLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logging.NewLogger(&buf, "chatty", "")

	l.Debug("hidden")
	l.Info("shown")

	assert.Len(t, decodeLines(t, &buf), 1)
}

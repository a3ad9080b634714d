// FILE: proflog/src/internal/handler/json_test.go
package handler

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"proflog/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler_JSONLinesFormat(t *testing.T) {
	h, err := NewJSONHandler(testConfig(t, "json"), newTestLogger())
	require.NoError(t, err)

	require.NoError(t, h.Persist(core.NewEntry(core.Info, `say "hi"`)))
	require.NoError(t, h.Persist(core.NewEntry(core.Warning, "two\nlines")))

	raw, err := os.ReadFile(h.path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 2, "one JSON object per line")

	for i, line := range lines {
		var obj map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &obj), "line %d", i+1)
		assert.Contains(t, obj, "timestamp")
		assert.Contains(t, obj, "level")
		assert.Contains(t, obj, "message")
	}
}

// Persisting must only ever grow the file: no read-modify-write of prior
// content.
func TestJSONHandler_AppendOnly(t *testing.T) {
	h, err := NewJSONHandler(testConfig(t, "json"), newTestLogger())
	require.NoError(t, err)

	require.NoError(t, h.Persist(core.NewEntry(core.Info, "first")))
	before, err := os.ReadFile(h.path)
	require.NoError(t, err)

	require.NoError(t, h.Persist(core.NewEntry(core.Info, "second")))
	after, err := os.ReadFile(h.path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(after), string(before)),
		"existing content must be untouched by a later persist")
}

func TestJSONHandler_LongMessageRoundTrip(t *testing.T) {
	h, err := NewJSONHandler(testConfig(t, "json"), newTestLogger())
	require.NoError(t, err)

	big := strings.Repeat(`payload "x" and more `, 256*1024) // well past any read buffer
	require.NoError(t, h.Persist(core.NewEntry(core.Info, "small before")))
	require.NoError(t, h.Persist(core.NewEntry(core.Error, big)))
	require.NoError(t, h.Persist(core.NewEntry(core.Info, "small after")))

	entries, err := h.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "small before", entries[0].Message)
	assert.Equal(t, big, entries[1].Message)
	assert.Equal(t, "small after", entries[2].Message)
	assert.Zero(t, h.Stats().MalformedSkipped)
}

func TestJSONHandler_SkipsMalformedLines(t *testing.T) {
	h, err := NewJSONHandler(testConfig(t, "json"), newTestLogger())
	require.NoError(t, err)

	require.NoError(t, h.Persist(core.NewEntry(core.Info, "good")))
	require.NoError(t, appendFile(h.path, []byte("{truncated\n")))
	require.NoError(t, appendFile(h.path, []byte(`{"timestamp":"bogus","level":"INFO","message":"x"}`+"\n")))
	require.NoError(t, h.Persist(core.NewEntry(core.Error, "also good")))

	entries, err := h.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "good", entries[0].Message)
	assert.Equal(t, "also good", entries[1].Message)
	assert.Equal(t, uint64(2), h.Stats().MalformedSkipped)
}

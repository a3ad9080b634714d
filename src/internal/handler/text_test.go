// FILE: proflog/src/internal/handler/text_test.go
package handler

import (
	"os"
	"strings"
	"testing"

	"proflog/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeMessage(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Plain", input: "hello world", expected: "hello world"},
		{name: "Pipe", input: "a|b", expected: "a%7Cb"},
		{name: "Percent", input: "100%", expected: "100%25"},
		{name: "Newline", input: "a\nb", expected: "a%0Ab"},
		{name: "CarriageReturn", input: "a\r\nb", expected: "a%0D%0Ab"},
		{name: "EscapeOfEscape", input: "%7C", expected: "%257C"},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			escaped := escapeMessage(tc.input)
			assert.Equal(t, tc.expected, escaped)
			assert.NotContains(t, escaped, "\n")
			assert.NotContains(t, escaped, "|")

			unescaped, err := unescapeMessage(escaped)
			require.NoError(t, err)
			assert.Equal(t, tc.input, unescaped)
		})
	}
}

func TestUnescapeMessageInvalid(t *testing.T) {
	for _, input := range []string{"%", "%7", "%zz", "trailing%"} {
		_, err := unescapeMessage(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTextHandler_OneLinePerEntry(t *testing.T) {
	h, err := NewTextHandler(testConfig(t, "text"), newTestLogger())
	require.NoError(t, err)

	require.NoError(t, h.Persist(core.NewEntry(core.Error, "multi\nline\nmessage")))
	require.NoError(t, h.Persist(core.NewEntry(core.Info, "second")))

	raw, err := os.ReadFile(h.path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	assert.Len(t, lines, 2, "embedded newlines must not break line framing")
}

func TestTextHandler_LongMessageRoundTrip(t *testing.T) {
	h, err := NewTextHandler(testConfig(t, "text"), newTestLogger())
	require.NoError(t, err)

	big := strings.Repeat("wide | row\n", 512*1024) // well past any read buffer
	require.NoError(t, h.Persist(core.NewEntry(core.Info, "small before")))
	require.NoError(t, h.Persist(core.NewEntry(core.Warning, big)))
	require.NoError(t, h.Persist(core.NewEntry(core.Info, "small after")))

	entries, err := h.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "small before", entries[0].Message)
	assert.Equal(t, big, entries[1].Message)
	assert.Equal(t, "small after", entries[2].Message)
	assert.Zero(t, h.Stats().MalformedSkipped)
}

func TestTextHandler_SkipsMalformedLines(t *testing.T) {
	h, err := NewTextHandler(testConfig(t, "text"), newTestLogger())
	require.NoError(t, err)

	require.NoError(t, h.Persist(core.NewEntry(core.Info, "good one")))

	// Corruption between two valid entries
	require.NoError(t, appendFile(h.path, []byte("not a log line\n")))
	require.NoError(t, appendFile(h.path, []byte("2024-06-01T00:00:00.000000Z | NOPE | msg\n")))

	require.NoError(t, h.Persist(core.NewEntry(core.Info, "good two")))

	entries, err := h.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "good one", entries[0].Message)
	assert.Equal(t, "good two", entries[1].Message)
	assert.Equal(t, uint64(2), h.Stats().MalformedSkipped)
}

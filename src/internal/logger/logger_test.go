// FILE: proflog/src/internal/logger/logger_test.go
package logger

import (
	"errors"
	"path/filepath"
	"testing"

	"proflog/src/internal/config"
	"proflog/src/internal/core"
	"proflog/src/internal/handler"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func newJSONHandler(t *testing.T) handler.Handler {
	t.Helper()
	h, err := handler.New(config.HandlerConfig{
		Backend: "json",
		Path:    filepath.Join(t.TempDir(), "entries.jsonl"),
	}, newTestLogger())
	require.NoError(t, err)
	return h
}

// Persist always fails; stands in for an unwritable backend
type failingHandler struct{}

func (failingHandler) Persist(core.LogEntry) error {
	return &core.PersistenceError{Backend: "fail", Op: "persist", Err: errors.New("disk full")}
}

func (failingHandler) ReadAll() ([]core.LogEntry, error) { return nil, nil }

func (failingHandler) Stats() handler.Stats { return handler.Stats{Backend: "fail"} }

func TestLoggerThreshold(t *testing.T) {
	h := newJSONHandler(t)
	l := New([]handler.Handler{h}, newTestLogger())

	t.Run("DefaultIsInfo", func(t *testing.T) {
		assert.Equal(t, core.Info, l.Level())
		require.NoError(t, l.Debug("below threshold"))
		require.NoError(t, l.Info("at threshold"))

		entries, err := h.ReadAll()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "at threshold", entries[0].Message)
	})

	t.Run("LoweredToDebug", func(t *testing.T) {
		l.SetLevel(core.Debug)
		require.NoError(t, l.Debug("now persisted"))

		entries, err := h.ReadAll()
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("RaisedToCritical", func(t *testing.T) {
		l.SetLevel(core.Critical)
		require.NoError(t, l.Error("suppressed"))
		require.NoError(t, l.Critical("persisted"))

		entries, err := h.ReadAll()
		require.NoError(t, err)
		assert.Len(t, entries, 3)
		assert.Equal(t, core.Critical, entries[2].Level)
	})
}

func TestLoggerConvenienceMethods(t *testing.T) {
	h := newJSONHandler(t)
	l := New([]handler.Handler{h}, newTestLogger())
	l.SetLevel(core.Debug)

	require.NoError(t, l.Debug("d"))
	require.NoError(t, l.Info("i"))
	require.NoError(t, l.Warning("w"))
	require.NoError(t, l.Error("e"))
	require.NoError(t, l.Critical("c"))

	entries, err := h.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	expected := core.Levels()
	for i, e := range entries {
		assert.Equal(t, expected[i], e.Level)
	}
}

func TestLoggerFanOut(t *testing.T) {
	h1 := newJSONHandler(t)
	h2 := newJSONHandler(t)
	l := New([]handler.Handler{h1, h2}, newTestLogger())

	require.NoError(t, l.Info("both"))

	for _, h := range []handler.Handler{h1, h2} {
		entries, err := h.ReadAll()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "both", entries[0].Message)
	}
}

func TestLoggerPersistErrorsPropagate(t *testing.T) {
	good := newJSONHandler(t)
	l := New([]handler.Handler{failingHandler{}, good}, newTestLogger())

	err := l.Info("still reaches the good handler")
	require.Error(t, err)

	var pErr *core.PersistenceError
	assert.True(t, errors.As(err, &pErr))

	entries, readErr := good.ReadAll()
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "one failing handler must not starve the others")
}

func TestLoggerStats(t *testing.T) {
	l := New([]handler.Handler{newJSONHandler(t)}, newTestLogger())

	require.NoError(t, l.Debug("dropped"))
	require.NoError(t, l.Info("logged"))

	stats := l.Stats()
	assert.Equal(t, uint64(1), stats.TotalLogged)
	assert.Equal(t, uint64(1), stats.TotalDropped)
}

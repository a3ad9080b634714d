// FILE: proflog/src/internal/logger/logger.go
package logger

import (
	"sync/atomic"

	"proflog/src/internal/core"
	"proflog/src/internal/handler"

	"github.com/lixenwraith/log"
	"go.uber.org/multierr"
)

// Logger is the write-side facade: it stamps entries and fans them out to
// every configured handler. Entries below the threshold level are dropped
// before a handler ever sees them.
type Logger struct {
	handlers  []handler.Handler
	threshold atomic.Int32
	logger    *log.Logger

	totalLogged  atomic.Uint64
	totalDropped atomic.Uint64
}

// New creates a logger writing through the given handlers. The default
// threshold is Info.
func New(handlers []handler.Handler, opLog *log.Logger) *Logger {
	l := &Logger{
		handlers: handlers,
		logger:   opLog,
	}
	l.threshold.Store(int32(core.Info))
	return l
}

// SetLevel changes the minimum severity that gets persisted.
func (l *Logger) SetLevel(level core.Level) {
	l.threshold.Store(int32(level))
}

// Level returns the current threshold.
func (l *Logger) Level() core.Level {
	return core.Level(l.threshold.Load())
}

// Log persists one entry through every handler. Each handler failure is
// reported; a failed handler does not stop the fan-out, but every failure
// surfaces in the combined error so a dropped entry is never silent.
func (l *Logger) Log(level core.Level, message string) error {
	if level < l.Level() {
		l.totalDropped.Add(1)
		return nil
	}

	entry := core.NewEntry(level, message)

	var errs error
	for _, h := range l.handlers {
		if err := h.Persist(entry); err != nil {
			l.logger.Error("msg", "Handler persist failed",
				"component", "logger",
				"backend", h.Stats().Backend,
				"error", err)
			errs = multierr.Append(errs, err)
		}
	}

	if errs == nil {
		l.totalLogged.Add(1)
	}
	return errs
}

func (l *Logger) Debug(message string) error {
	return l.Log(core.Debug, message)
}

func (l *Logger) Info(message string) error {
	return l.Log(core.Info, message)
}

func (l *Logger) Warning(message string) error {
	return l.Log(core.Warning, message)
}

func (l *Logger) Error(message string) error {
	return l.Log(core.Error, message)
}

func (l *Logger) Critical(message string) error {
	return l.Log(core.Critical, message)
}

// Stats contains cumulative facade counters
type Stats struct {
	TotalLogged  uint64
	TotalDropped uint64
}

func (l *Logger) Stats() Stats {
	return Stats{
		TotalLogged:  l.totalLogged.Load(),
		TotalDropped: l.totalDropped.Load(),
	}
}

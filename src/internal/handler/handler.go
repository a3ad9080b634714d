// FILE: proflog/src/internal/handler/handler.go
package handler

import (
	"sync/atomic"
	"time"

	"proflog/src/internal/config"
	"proflog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Handler persists and retrieves log entries for one storage backend.
// Implementations hold no open resource between calls: every operation
// acquires its file or database handle, does its work and releases the
// handle before returning.
type Handler interface {
	// Persist appends one entry to the backend. Failures surface as
	// *core.PersistenceError, never silently.
	Persist(entry core.LogEntry) error

	// ReadAll returns every entry in write order. A backend that has never
	// been written to yields an empty result, not an error. Records that
	// fail to decode are skipped and counted, not fatal.
	ReadAll() ([]core.LogEntry, error)

	// Stats returns cumulative operation counters.
	Stats() Stats
}

// LevelQuerier is implemented by backends that can filter by level at the
// storage layer instead of in application code.
type LevelQuerier interface {
	ReadByLevel(level core.Level) ([]core.LogEntry, error)
}

// RangeQuerier is implemented by backends that can filter by time range at
// the storage layer. Both bounds are inclusive.
type RangeQuerier interface {
	ReadByTimeRange(start, end time.Time) ([]core.LogEntry, error)
}

// Stats contains cumulative counters for a handler
type Stats struct {
	Backend          string
	TotalPersisted   uint64
	TotalRead        uint64
	MalformedSkipped uint64
}

// New creates a handler for the configured backend type.
func New(cfg config.HandlerConfig, logger *log.Logger) (Handler, error) {
	switch cfg.Backend {
	case "text":
		return NewTextHandler(cfg, logger)
	case "json":
		return NewJSONHandler(cfg, logger)
	case "csv":
		return NewCSVHandler(cfg, logger)
	case "sqlite":
		return NewSQLiteHandler(cfg, logger)
	default:
		return nil, &core.ConfigurationError{
			Field:  "backend.type",
			Reason: "unknown backend type " + cfg.Backend,
		}
	}
}

// Shared counter block embedded by every handler
type counters struct {
	totalPersisted   atomic.Uint64
	totalRead        atomic.Uint64
	malformedSkipped atomic.Uint64
}

func (c *counters) snapshot(backend string) Stats {
	return Stats{
		Backend:          backend,
		TotalPersisted:   c.totalPersisted.Load(),
		TotalRead:        c.totalRead.Load(),
		MalformedSkipped: c.malformedSkipped.Load(),
	}
}

// skipMalformed records one undecodable record: warn once through the
// operational logger, bump the counter, carry on with the read.
func (c *counters) skipMalformed(logger *log.Logger, recErr *core.MalformedRecordError) {
	c.malformedSkipped.Add(1)
	logger.Warn("msg", "Skipping malformed record",
		"component", recErr.Backend+"_handler",
		"record", recErr.Record,
		"error", recErr.Err)
}

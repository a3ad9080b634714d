// FILE: proflog/src/internal/reader/reader.go
package reader

import (
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"proflog/src/internal/core"
	"proflog/src/internal/handler"

	"github.com/lixenwraith/log"
)

// Reader issues filtered and grouped queries against one handler. It is
// written against the Handler contract only; when the backend can filter at
// the storage layer it is asked to, otherwise filtering happens here over a
// full read. Nothing is cached: every query re-reads, so concurrent writers
// are always visible.
type Reader struct {
	handler handler.Handler
	logger  *log.Logger

	totalQueries atomic.Uint64
}

func New(h handler.Handler, opLog *log.Logger) *Reader {
	return &Reader{handler: h, logger: opLog}
}

// FindByLevel returns entries with exactly the given level, in write order.
func (r *Reader) FindByLevel(level core.Level) ([]core.LogEntry, error) {
	r.totalQueries.Add(1)

	if q, ok := r.handler.(handler.LevelQuerier); ok {
		r.logger.Debug("msg", "Level query pushed to backend",
			"component", "reader",
			"level", level.String())
		return q.ReadByLevel(level)
	}

	entries, err := r.handler.ReadAll()
	if err != nil {
		return nil, err
	}

	var found []core.LogEntry
	for _, e := range entries {
		if e.Level == level {
			found = append(found, e)
		}
	}
	return found, nil
}

// FindByTimeRange returns entries with start <= timestamp <= end, both
// bounds inclusive, in write order.
func (r *Reader) FindByTimeRange(start, end time.Time) ([]core.LogEntry, error) {
	r.totalQueries.Add(1)

	if end.Before(start) {
		return nil, nil
	}

	if q, ok := r.handler.(handler.RangeQuerier); ok {
		r.logger.Debug("msg", "Range query pushed to backend",
			"component", "reader")
		return q.ReadByTimeRange(start, end)
	}

	entries, err := r.handler.ReadAll()
	if err != nil {
		return nil, err
	}

	var found []core.LogEntry
	for _, e := range entries {
		if !e.Time.Before(start) && !e.Time.After(end) {
			found = append(found, e)
		}
	}
	return found, nil
}

// GroupByLevel buckets all entries by level in one pass. Only levels that
// actually occur appear as keys; each bucket preserves write order.
func (r *Reader) GroupByLevel() (map[core.Level][]core.LogEntry, error) {
	r.totalQueries.Add(1)

	entries, err := r.handler.ReadAll()
	if err != nil {
		return nil, err
	}

	groups := make(map[core.Level][]core.LogEntry)
	for _, e := range entries {
		groups[e.Level] = append(groups[e.Level], e)
	}
	return groups, nil
}

// FindByText returns entries whose message contains the given substring,
// in write order.
func (r *Reader) FindByText(text string, caseSensitive bool) ([]core.LogEntry, error) {
	r.totalQueries.Add(1)

	entries, err := r.handler.ReadAll()
	if err != nil {
		return nil, err
	}

	needle := text
	if !caseSensitive {
		needle = strings.ToLower(text)
	}

	var found []core.LogEntry
	for _, e := range entries {
		haystack := e.Message
		if !caseSensitive {
			haystack = strings.ToLower(e.Message)
		}
		if strings.Contains(haystack, needle) {
			found = append(found, e)
		}
	}
	return found, nil
}

// SortByTime returns all entries ordered by timestamp. The sort is stable,
// so entries sharing a timestamp keep their write order.
func (r *Reader) SortByTime(ascending bool) ([]core.LogEntry, error) {
	r.totalQueries.Add(1)

	entries, err := r.handler.ReadAll()
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b core.LogEntry) int {
		c := a.Time.Compare(b.Time)
		if !ascending {
			return -c
		}
		return c
	})
	return sorted, nil
}

// TotalQueries reports how many queries this reader has served.
func (r *Reader) TotalQueries() uint64 {
	return r.totalQueries.Load()
}

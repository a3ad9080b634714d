// FILE: proflog/src/internal/handler/json.go
package handler

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"proflog/src/internal/config"
	"proflog/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONHandler persists entries as JSON Lines: one object per line, appended
// in place. Persisting never rereads or rewrites existing content.
type JSONHandler struct {
	counters
	path   string
	logger *log.Logger
}

// On-disk record shape
type jsonRecord struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

func NewJSONHandler(cfg config.HandlerConfig, logger *log.Logger) (*JSONHandler, error) {
	path, err := prepareFilePath(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("msg", "JSON handler created",
		"component", "json_handler",
		"path", path)

	return &JSONHandler{path: path, logger: logger}, nil
}

func (h *JSONHandler) Persist(entry core.LogEntry) error {
	data, err := json.Marshal(jsonRecord{
		Timestamp: core.FormatTime(entry.Time),
		Level:     entry.Level.String(),
		Message:   entry.Message,
	})
	if err != nil {
		return &core.PersistenceError{Backend: "json", Op: "persist", Err: err}
	}

	if err := appendFile(h.path, append(data, '\n')); err != nil {
		return &core.PersistenceError{Backend: "json", Op: "persist", Err: err}
	}

	h.totalPersisted.Add(1)
	return nil
}

func (h *JSONHandler) ReadAll() ([]core.LogEntry, error) {
	f, err := openForRead(h.path)
	if err != nil {
		return nil, &core.PersistenceError{Backend: "json", Op: "read", Err: err}
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()

	var entries []core.LogEntry
	// bufio.Reader instead of a Scanner: lines have no length ceiling, so a
	// message of any size Persist accepted reads back instead of failing the
	// whole call.
	r := bufio.NewReaderSize(f, 64*1024)

	lineNo := 0
	for {
		line, readErr := r.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, &core.PersistenceError{Backend: "json", Op: "read", Err: readErr}
		}

		if len(line) > 0 {
			lineNo++
		}
		line = bytes.TrimSuffix(line, []byte{'\n'})
		if len(line) > 0 {
			entry, err := decodeJSONLine(line)
			if err != nil {
				h.skipMalformed(h.logger, &core.MalformedRecordError{
					Backend: "json", Record: lineNo, Err: err,
				})
			} else {
				entries = append(entries, entry)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	h.totalRead.Add(uint64(len(entries)))
	return entries, nil
}

func (h *JSONHandler) Stats() Stats {
	return h.snapshot("json")
}

func decodeJSONLine(line []byte) (core.LogEntry, error) {
	var rec jsonRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return core.LogEntry{}, err
	}

	ts, err := core.ParseTime(rec.Timestamp)
	if err != nil {
		return core.LogEntry{}, fmt.Errorf("bad timestamp: %w", err)
	}

	level, err := core.ParseLevel(rec.Level)
	if err != nil {
		return core.LogEntry{}, fmt.Errorf("bad level: %w", err)
	}

	return core.LogEntry{Time: ts, Level: level, Message: rec.Message}, nil
}

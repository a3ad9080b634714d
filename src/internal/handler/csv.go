// FILE: proflog/src/internal/handler/csv.go
package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"proflog/src/internal/config"
	"proflog/src/internal/core"

	"github.com/lixenwraith/log"
)

var csvHeader = []string{"timestamp", "level", "message"}

// CSVHandler persists entries as RFC 4180 rows under a
// timestamp,level,message header. encoding/csv does the quoting in both
// directions, so embedded commas, quotes and newlines survive round-trips.
type CSVHandler struct {
	counters
	path   string
	logger *log.Logger
}

func NewCSVHandler(cfg config.HandlerConfig, logger *log.Logger) (*CSVHandler, error) {
	path, err := prepareFilePath(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("msg", "CSV handler created",
		"component", "csv_handler",
		"path", path)

	return &CSVHandler{path: path, logger: logger}, nil
}

func (h *CSVHandler) Persist(entry core.LogEntry) error {
	if err := h.appendRow(entry); err != nil {
		return &core.PersistenceError{Backend: "csv", Op: "persist", Err: err}
	}
	h.totalPersisted.Add(1)
	return nil
}

// appendRow writes the header and the row under one lock so a concurrent
// writer cannot slip a row between them on first use.
func (h *CSVHandler) appendRow(entry core.LogEntry) error {
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := lockFile(f); err != nil {
		return fmt.Errorf("lock %s: %w", h.path, err)
	}
	defer unlockFile(f)

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{
		core.FormatTime(entry.Time),
		entry.Level.String(),
		entry.Message,
	}); err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

func (h *CSVHandler) ReadAll() ([]core.LogEntry, error) {
	f, err := openForRead(h.path)
	if err != nil {
		return nil, &core.PersistenceError{Backend: "csv", Op: "read", Err: err}
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // record length checked below so short rows skip, not abort

	var entries []core.LogEntry
	recordNo := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		recordNo++
		if err != nil {
			h.skipMalformed(h.logger, &core.MalformedRecordError{
				Backend: "csv", Record: recordNo, Err: err,
			})
			continue
		}

		// Header row, written on first persist
		if recordNo == 1 && isCSVHeader(record) {
			continue
		}

		entry, err := decodeCSVRecord(record)
		if err != nil {
			h.skipMalformed(h.logger, &core.MalformedRecordError{
				Backend: "csv", Record: recordNo, Err: err,
			})
			continue
		}
		entries = append(entries, entry)
	}

	h.totalRead.Add(uint64(len(entries)))
	return entries, nil
}

func (h *CSVHandler) Stats() Stats {
	return h.snapshot("csv")
}

func isCSVHeader(record []string) bool {
	return len(record) == 3 &&
		record[0] == csvHeader[0] &&
		record[1] == csvHeader[1] &&
		record[2] == csvHeader[2]
}

func decodeCSVRecord(record []string) (core.LogEntry, error) {
	if len(record) != 3 {
		return core.LogEntry{}, fmt.Errorf("expected 3 fields, got %d", len(record))
	}

	ts, err := core.ParseTime(record[0])
	if err != nil {
		return core.LogEntry{}, fmt.Errorf("bad timestamp: %w", err)
	}

	level, err := core.ParseLevel(record[1])
	if err != nil {
		return core.LogEntry{}, fmt.Errorf("bad level: %w", err)
	}

	return core.LogEntry{Time: ts, Level: level, Message: record[2]}, nil
}

// FILE: proflog/src/internal/handler/sqlite.go
package handler

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"proflog/src/internal/config"
	"proflog/src/internal/core"

	"github.com/lixenwraith/log"
	_ "modernc.org/sqlite"
)

// SQLiteHandler persists entries as rows of a single table. Every statement
// is parameter-bound; message content never reaches the SQL text. Timestamps
// are stored as microseconds since epoch so the range index compares
// integers.
type SQLiteHandler struct {
	counters
	path   string
	logger *log.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp INTEGER NOT NULL,
	level TEXT NOT NULL,
	message TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs (timestamp);
CREATE INDEX IF NOT EXISTS idx_logs_level ON logs (level);
`

func NewSQLiteHandler(cfg config.HandlerConfig, logger *log.Logger) (*SQLiteHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &core.ConfigurationError{
				Field:  "backend.path",
				Reason: fmt.Sprintf("cannot create directory %s: %v", dir, err),
			}
		}
	}

	h := &SQLiteHandler{path: cfg.Path, logger: logger}

	// Create the schema eagerly so a bad path or unwritable database fails
	// at construction, not on first persist.
	db, err := h.open()
	if err != nil {
		return nil, &core.ConfigurationError{
			Field:  "backend.path",
			Reason: fmt.Sprintf("cannot open database %s: %v", cfg.Path, err),
		}
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, &core.ConfigurationError{
			Field:  "backend.path",
			Reason: fmt.Sprintf("cannot initialize database %s: %v", cfg.Path, err),
		}
	}

	logger.Debug("msg", "SQLite handler created",
		"component", "sqlite_handler",
		"path", cfg.Path)

	return h, nil
}

// open acquires a connection for one operation; the caller closes it before
// returning.
func (h *SQLiteHandler) open() (*sql.DB, error) {
	dsn := "file:" + h.path + "?_pragma=busy_timeout(5000)"
	return sql.Open("sqlite", dsn)
}

func (h *SQLiteHandler) Persist(entry core.LogEntry) error {
	db, err := h.open()
	if err != nil {
		return &core.PersistenceError{Backend: "sqlite", Op: "persist", Err: err}
	}
	defer db.Close()

	_, err = db.Exec(
		"INSERT INTO logs (timestamp, level, message) VALUES (?, ?, ?)",
		entry.Time.UTC().Truncate(time.Microsecond).UnixMicro(),
		entry.Level.String(),
		entry.Message,
	)
	if err != nil {
		return &core.PersistenceError{Backend: "sqlite", Op: "persist", Err: err}
	}

	h.totalPersisted.Add(1)
	return nil
}

func (h *SQLiteHandler) ReadAll() ([]core.LogEntry, error) {
	return h.query("SELECT timestamp, level, message FROM logs ORDER BY id")
}

// ReadByLevel pushes the level filter down to the indexed level column.
func (h *SQLiteHandler) ReadByLevel(level core.Level) ([]core.LogEntry, error) {
	return h.query(
		"SELECT timestamp, level, message FROM logs WHERE level = ? ORDER BY id",
		level.String(),
	)
}

// ReadByTimeRange pushes the inclusive range filter down to the indexed
// timestamp column.
func (h *SQLiteHandler) ReadByTimeRange(start, end time.Time) ([]core.LogEntry, error) {
	return h.query(
		"SELECT timestamp, level, message FROM logs WHERE timestamp BETWEEN ? AND ? ORDER BY id",
		start.UTC().Truncate(time.Microsecond).UnixMicro(),
		end.UTC().Truncate(time.Microsecond).UnixMicro(),
	)
}

func (h *SQLiteHandler) query(stmt string, args ...any) ([]core.LogEntry, error) {
	db, err := h.open()
	if err != nil {
		return nil, &core.PersistenceError{Backend: "sqlite", Op: "read", Err: err}
	}
	defer db.Close()

	rows, err := db.Query(stmt, args...)
	if err != nil {
		return nil, &core.PersistenceError{Backend: "sqlite", Op: "read", Err: err}
	}
	defer rows.Close()

	var entries []core.LogEntry
	rowNo := 0
	for rows.Next() {
		rowNo++
		var (
			ts        int64
			levelName string
			message   string
		)
		if err := rows.Scan(&ts, &levelName, &message); err != nil {
			h.skipMalformed(h.logger, &core.MalformedRecordError{
				Backend: "sqlite", Record: rowNo, Err: err,
			})
			continue
		}

		level, err := core.ParseLevel(levelName)
		if err != nil {
			h.skipMalformed(h.logger, &core.MalformedRecordError{
				Backend: "sqlite", Record: rowNo, Err: err,
			})
			continue
		}

		entries = append(entries, core.LogEntry{
			Time:    time.UnixMicro(ts).UTC(),
			Level:   level,
			Message: message,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, &core.PersistenceError{Backend: "sqlite", Op: "read", Err: err}
	}

	h.totalRead.Add(uint64(len(entries)))
	return entries, nil
}

func (h *SQLiteHandler) Stats() Stats {
	return h.snapshot("sqlite")
}

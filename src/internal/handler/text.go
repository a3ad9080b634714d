// FILE: proflog/src/internal/handler/text.go
package handler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"proflog/src/internal/config"
	"proflog/src/internal/core"

	"github.com/lixenwraith/log"
)

const textSeparator = " | "

// TextHandler persists entries as one delimiter-separated line each:
//
//	2024-06-01T10:30:00.123456Z | ERROR | connection%0Alost
//
// The message field is percent-escaped so an embedded separator or newline
// cannot break line framing.
type TextHandler struct {
	counters
	path   string
	logger *log.Logger
}

func NewTextHandler(cfg config.HandlerConfig, logger *log.Logger) (*TextHandler, error) {
	path, err := prepareFilePath(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("msg", "Text handler created",
		"component", "text_handler",
		"path", path)

	return &TextHandler{path: path, logger: logger}, nil
}

func (h *TextHandler) Persist(entry core.LogEntry) error {
	line := core.FormatTime(entry.Time) + textSeparator +
		entry.Level.String() + textSeparator +
		escapeMessage(entry.Message) + "\n"

	if err := appendFile(h.path, []byte(line)); err != nil {
		return &core.PersistenceError{Backend: "text", Op: "persist", Err: err}
	}

	h.totalPersisted.Add(1)
	return nil
}

func (h *TextHandler) ReadAll() ([]core.LogEntry, error) {
	f, err := openForRead(h.path)
	if err != nil {
		return nil, &core.PersistenceError{Backend: "text", Op: "read", Err: err}
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
		line, readErr := r.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, &core.PersistenceError{Backend: "text", Op: "read", Err: readErr}
		}

		if line != "" {
			lineNo++
		}
		line = strings.TrimSuffix(line, "\n")
		if line != "" {
			entry, err := decodeTextLine(line)
			if err != nil {
				h.skipMalformed(h.logger, &core.MalformedRecordError{
					Backend: "text", Record: lineNo, Err: err,
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

func (h *TextHandler) Stats() Stats {
	return h.snapshot("text")
}

func decodeTextLine(line string) (core.LogEntry, error) {
	parts := strings.SplitN(line, textSeparator, 3)
	if len(parts) != 3 {
		return core.LogEntry{}, fmt.Errorf("expected 3 fields, got %d", len(parts))
	}

	ts, err := core.ParseTime(parts[0])
	if err != nil {
		return core.LogEntry{}, fmt.Errorf("bad timestamp: %w", err)
	}

	level, err := core.ParseLevel(parts[1])
	if err != nil {
		return core.LogEntry{}, fmt.Errorf("bad level: %w", err)
	}

	message, err := unescapeMessage(parts[2])
	if err != nil {
		return core.LogEntry{}, fmt.Errorf("bad message encoding: %w", err)
	}

	return core.LogEntry{Time: ts, Level: level, Message: message}, nil
}

// Escapes exactly the bytes that would corrupt line framing: the escape
// character itself, the field separator, and line breaks
var messageEscaper = strings.NewReplacer(
	"%", "%25",
	"|", "%7C",
	"\n", "%0A",
	"\r", "%0D",
)

func escapeMessage(s string) string {
	return messageEscaper.Replace(s)
}

func unescapeMessage(s string) (string, error) {
	if !strings.ContainsRune(s, '%') {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(s) {
			return "", fmt.Errorf("truncated escape at offset %d", i)
		}
		v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", fmt.Errorf("invalid escape %q at offset %d", s[i:i+3], i)
		}
		b.WriteByte(byte(v))
		i += 2
	}
	return b.String(), nil
}

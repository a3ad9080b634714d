// FILE: proflog/src/internal/core/entry.go
package core

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layout used by every file backend. RFC 3339 with a fixed
// six-digit fraction so entries carry microsecond resolution on disk.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Level is the severity of a log entry, totally ordered from Debug to Critical.
type Level int8

const (
	Debug Level = iota
	Info
	Warning
	Error
	Critical
)

var levelNames = [...]string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// Returns the canonical upper-case name
func (l Level) String() string {
	if l < Debug || l > Critical {
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
	return levelNames[l]
}

// Valid reports whether l is one of the defined severities.
func (l Level) Valid() bool {
	return l >= Debug && l <= Critical
}

// ParseLevel converts a level name to its Level value, case-insensitively.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARNING", "WARN":
		return Warning, nil
	case "ERROR":
		return Error, nil
	case "CRITICAL":
		return Critical, nil
	default:
		return 0, &ConfigurationError{Field: "level", Reason: fmt.Sprintf("unknown level %q", name)}
	}
}

// Levels returns all defined severities in ascending order.
func Levels() []Level {
	return []Level{Debug, Info, Warning, Error, Critical}
}

// LogEntry is an immutable record of one log event. Entries are passed by
// value; nothing mutates one after construction.
type LogEntry struct {
	Time    time.Time
	Level   Level
	Message string
}

// NewEntry stamps the entry with the current time, in UTC at microsecond
// resolution. All backends persist at that resolution, so truncating here
// keeps a persisted entry equal to the one the caller hands back out of a read.
func NewEntry(level Level, message string) LogEntry {
	return LogEntry{
		Time:    time.Now().UTC().Truncate(time.Microsecond),
		Level:   level,
		Message: message,
	}
}

// Equal reports value equality: same instant at microsecond resolution,
// same level, same message.
func (e LogEntry) Equal(other LogEntry) bool {
	return e.Time.Truncate(time.Microsecond).Equal(other.Time.Truncate(time.Microsecond)) &&
		e.Level == other.Level &&
		e.Message == other.Message
}

// Returns a human-readable rendering, not a wire format
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Time.Format(TimeLayout), e.Level, e.Message)
}

// FormatTime renders a timestamp the way backends store it.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(TimeLayout)
}

// ParseTime parses a backend-stored timestamp back into a UTC instant.
// Accepts any RFC 3339 fraction width, not just the one FormatTime writes.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

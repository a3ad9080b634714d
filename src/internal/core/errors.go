// FILE: proflog/src/internal/core/errors.go
package core

import "fmt"

// PersistenceError reports a backend that could not be written or read:
// permission denied, disk full, broken connection. Write-path instances
// always propagate to the caller.
type PersistenceError struct {
	Backend string // backend type name, e.g. "csv"
	Op      string // "persist" or "read"
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s backend: %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a single record that failed to decode during
// a read. Handlers recover from it locally: the record is skipped and
// counted, never surfaced as a read failure.
type MalformedRecordError struct {
	Backend string
	Record  int // 1-based line or row number
	Err     error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s backend: malformed record %d: %v", e.Backend, e.Record, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports invalid backend configuration, detected at
// construction time rather than on first use.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

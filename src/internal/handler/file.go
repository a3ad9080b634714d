// FILE: proflog/src/internal/handler/file.go
package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"proflog/src/internal/config"
	"proflog/src/internal/core"
)

// Shared plumbing for the three file-based backends. Files are opened per
// call and closed before returning; appends run under an advisory lock so
// two writers on the same path cannot interleave partial lines.

// prepareFilePath validates the bundle and makes sure the parent directory
// exists. Called once at handler construction.
func prepareFilePath(cfg config.HandlerConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", &core.ConfigurationError{
				Field:  "backend.path",
				Reason: fmt.Sprintf("cannot create directory %s: %v", dir, err),
			}
		}
	}

	if info, err := os.Stat(cfg.Path); err == nil && info.IsDir() {
		return "", &core.ConfigurationError{
			Field:  "backend.path",
			Reason: cfg.Path + " is a directory",
		}
	}

	return cfg.Path, nil
}

// appendFile appends data to path in one locked write. The file is created
// on first use and never truncated, so a crash mid-write loses at most the
// entry being appended.
func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := lockFile(f); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer unlockFile(f)

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

// openForRead opens path for reading. A path that does not exist yet is the
// "no entries logged" state: callers get (nil, nil) and return an empty
// result.
func openForRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

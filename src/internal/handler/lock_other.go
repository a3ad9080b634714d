// FILE: proflog/src/internal/handler/lock_other.go
//go:build !unix

package handler

import "os"

// No advisory locking outside unix; O_APPEND writes are the only guarantee.
func lockFile(f *os.File) error {
	return nil
}

func unlockFile(f *os.File) error {
	return nil
}

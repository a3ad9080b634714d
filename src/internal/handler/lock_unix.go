// FILE: proflog/src/internal/handler/lock_unix.go
//go:build unix

package handler

import (
	"os"

	"golang.org/x/sys/unix"
)

// Advisory whole-file lock. Cooperating proflog processes block each other
// for the duration of one append; the lock also drops with the descriptor
// if the process dies mid-write.
func lockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

// SPDX-License-Identifier: MPL-2.0

//go:build windows

package store

import (
	"os"

	"golang.org/x/sys/windows"
)

// lockFile takes a blocking exclusive lock on the first byte of the file
// via LockFileEx. Windows releases the lock when the handle is closed,
// matching the flock semantics relied on by the unix build.
func lockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	return windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, ol)
}

// unlockFile releases the lock taken by lockFile.
func unlockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, ol)
}

// SPDX-License-Identifier: MPL-2.0

package store

import (
	"log/slog"
	"os"
)

type (
	// FileLock holds an exclusive advisory lock on a file, serializing
	// store operations across processes and, within one process, across
	// concurrent goroutines (each acquisition opens its own descriptor,
	// so the OS lock contends either way). The lock is not reentrant.
	//
	// The zero-byte lock file is harmless if orphaned. The kernel
	// releases the lock automatically when the descriptor is closed,
	// including on process crash. No staleness detection is attempted.
	FileLock struct {
		file    *os.File
		path    string
		purpose string
	}

	// LockError reports that the lock file could not be opened. The
	// usual cause is a missing parent directory; callers are expected to
	// initialize the store before locking it.
	LockError struct {
		Path  string
		Cause error
	}
)

// Error returns the error message for LockError.
func (e *LockError) Error() string {
	return "open lock file " + e.Path + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e *LockError) Unwrap() error { return e.Cause }

// Acquire opens (or creates) the lock file at path and takes a blocking
// exclusive lock on it. The call waits without bound while another holder
// exists; there is no timeout. purpose only labels log output.
func Acquire(path, purpose string) (*FileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, &LockError{Path: path, Cause: err}
	}

	slog.Debug("waiting for file lock", "path", path, "purpose", purpose)
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, &LockError{Path: path, Cause: err}
	}
	slog.Debug("acquired file lock", "path", path, "purpose", purpose)

	return &FileLock{file: f, path: path, purpose: purpose}, nil
}

// Release unlocks and closes the lock file. It is safe to call multiple
// times; subsequent calls are no-ops.
func (l *FileLock) Release() {
	if l == nil || l.file == nil {
		return
	}
	// Explicit unlock before Close; Close alone also releases the lock.
	if err := unlockFile(l.file); err != nil {
		slog.Debug("file unlock failed", "path", l.path, "error", err)
	}
	if err := l.file.Close(); err != nil {
		slog.Debug("lock file close failed", "path", l.path, "error", err)
	}
	l.file = nil
}

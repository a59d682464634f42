// SPDX-License-Identifier: MPL-2.0

package backend

import "errors"

var (
	// ErrAlreadyExists is the sentinel wrapped by PreconditionError when
	// creating an environment whose name is already taken.
	ErrAlreadyExists = errors.New("virtual environment already exists")
	// ErrDoesNotExist is the sentinel wrapped by PreconditionError when
	// removing an environment that cannot be found.
	ErrDoesNotExist = errors.New("virtual environment does not exist")
	// ErrNoActiveEnv is the sentinel wrapped by PreconditionError when a
	// package operation runs with no activated environment.
	ErrNoActiveEnv = errors.New("no active virtual environment")
	// ErrNotManaged is the sentinel wrapped by PreconditionError when the
	// activated environment does not belong to the resolved store.
	ErrNotManaged = errors.New("virtual environment not managed by this store")
)

// PreconditionError reports an operation that was rejected before any
// mutation took place. It wraps one of the package sentinels for
// errors.Is() compatibility.
type PreconditionError struct {
	// Detail is the user-facing message.
	Detail string
	// Err is the wrapped sentinel.
	Err error
}

// Error returns the error message for PreconditionError.
func (e *PreconditionError) Error() string { return e.Detail }

// Unwrap returns the wrapped sentinel.
func (e *PreconditionError) Unwrap() error { return e.Err }

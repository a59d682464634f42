// SPDX-License-Identifier: MPL-2.0

// Package scope resolves which on-disk environment store a meowda
// invocation operates on.
//
// A store is selected per-project (Local) or per-user (Global). Local
// resolution walks from the working directory up to the filesystem root
// collecting every existing .meowda/venvs directory, nearest first; the
// nearest one becomes the primary store path and the rest act as read-only
// shadow paths. Both scopes can be overridden through environment
// variables, which bypass discovery entirely.
package scope

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// EnvLocalVenvDir overrides the local store directory.
	EnvLocalVenvDir = "MEOWDA_LOCAL_VENV_DIR"
	// EnvGlobalVenvDir overrides the global store directory.
	EnvGlobalVenvDir = "MEOWDA_GLOBAL_VENV_DIR"
	// EnvVirtualEnv carries the path of the currently activated
	// environment, set by the shell activation hook.
	EnvVirtualEnv = "VIRTUAL_ENV"

	// AppName is the application name used for the global store location.
	AppName = "meowda"

	// markerDirName is the per-project directory the local walk looks for.
	markerDirName = ".meowda"
	// venvsDirName is the store subdirectory inside markerDirName.
	venvsDirName = "venvs"
)

type (
	// Scope selects whether the store is resolved per-project or per-user.
	Scope string

	// ConfigError reports that a store location could not be determined
	// from the environment.
	ConfigError struct {
		Reason string
		Cause  error
	}

	// Resolver computes the ordered candidate directories for a scope.
	// The zero value is not usable; construct with NewResolver.
	Resolver struct {
		getenv func(string) string
		getwd  func() (string, error)
	}
)

const (
	// Local resolves the store per-project via the upward directory walk.
	Local Scope = "local"
	// Global resolves the store in the user-level state directory.
	Global Scope = "global"
)

// ParseScope converts a string into a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case Local, Global:
		return Scope(s), nil
	default:
		return "", &ConfigError{Reason: fmt.Sprintf("invalid scope %q (expected %q or %q)", s, Local, Global)}
	}
}

// Error returns the error message for ConfigError.
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return e.Reason + ": " + e.Cause.Error()
	}
	return e.Reason
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigError) Unwrap() error { return e.Cause }

// NewResolver creates a Resolver backed by the process environment and
// working directory.
func NewResolver() *Resolver {
	return &Resolver{getenv: os.Getenv, getwd: os.Getwd}
}

// NewResolverWith creates a Resolver with injected environment and working
// directory lookups. This enables testing without mutating process-global
// state.
func NewResolverWith(getenv func(string) string, getwd func() (string, error)) *Resolver {
	return &Resolver{getenv: getenv, getwd: getwd}
}

// Resolve returns the ordered candidate store directories for the scope.
// The first entry is the primary path; any further entries are shadow
// paths consulted read-only for discovery. Resolve only reads the
// filesystem, it never creates anything.
func (r *Resolver) Resolve(s Scope) ([]string, error) {
	switch s {
	case Local:
		return r.localPaths()
	case Global:
		path, err := r.globalPath()
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown scope %q", s)}
	}
}

// localPaths resolves the candidate directories for Local scope.
//
// Prefer, in order:
//  1. The directory named by MEOWDA_LOCAL_VENV_DIR (the walk is skipped
//     entirely, so no shadow paths exist).
//  2. Every .meowda/venvs directory found walking from the working
//     directory up to the filesystem root, nearest first.
//  3. A not-yet-created .meowda/venvs under the working directory.
func (r *Resolver) localPaths() ([]string, error) {
	if dir := r.getenv(EnvLocalVenvDir); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, &ConfigError{
				Reason: "invalid path for " + EnvLocalVenvDir + " environment variable",
				Cause:  err,
			}
		}
		return []string{abs}, nil
	}

	cwd, err := r.getwd()
	if err != nil {
		return nil, &ConfigError{Reason: "failed to get current working directory", Cause: err}
	}

	if dirs := findLocalVenvDirs(cwd); len(dirs) > 0 {
		return dirs, nil
	}
	return []string{filepath.Join(cwd, markerDirName, venvsDirName)}, nil
}

// globalPath resolves the single candidate directory for Global scope.
//
// Prefer, in order:
//  1. The directory named by MEOWDA_GLOBAL_VENV_DIR.
//  2. <user-state-dir>/meowda/venvs, e.g. ~/.local/share/meowda/venvs
//     on Linux.
func (r *Resolver) globalPath() (string, error) {
	if dir := r.getenv(EnvGlobalVenvDir); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", &ConfigError{
				Reason: "invalid path for " + EnvGlobalVenvDir + " environment variable",
				Cause:  err,
			}
		}
		return abs, nil
	}

	stateDir, err := r.userStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, AppName, venvsDirName), nil
}

// findLocalVenvDirs walks from start up to the filesystem root and collects
// every existing .meowda/venvs directory, ordered nearest first.
// Directories that exist but cannot be read (permission denied) are
// silently skipped so a stray unreadable ancestor never aborts resolution.
func findLocalVenvDirs(start string) []string {
	var dirs []string

	dir := start
	for {
		candidate := filepath.Join(dir, markerDirName, venvsDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			if _, err := os.ReadDir(candidate); err == nil {
				dirs = append(dirs, candidate)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return dirs
}

// userStateDir returns the platform-appropriate user-level directory for
// application state: %APPDATA% on Windows, ~/Library/Application Support
// on macOS, and $XDG_DATA_HOME (defaulting to ~/.local/share) elsewhere.
func (r *Resolver) userStateDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := r.getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		if profile := r.getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, "AppData", "Roaming"), nil
		}
		return "", &ConfigError{Reason: "failed to determine user state directory: %APPDATA% is not set"}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", &ConfigError{Reason: "failed to determine user state directory", Cause: err}
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := r.getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", &ConfigError{Reason: "failed to determine user state directory", Cause: err}
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// ActiveEnvPath returns the absolutized path of the currently activated
// virtual environment, read from $VIRTUAL_ENV, or "" when none is active.
func (r *Resolver) ActiveEnvPath() string {
	dir := r.getenv(EnvVirtualEnv)
	if dir == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	return abs
}

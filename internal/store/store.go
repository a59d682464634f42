// SPDX-License-Identifier: MPL-2.0

// Package store is the filesystem-backed registry of named virtual
// environments.
//
// A Store spans one or more candidate directories resolved by
// internal/scope. The first candidate is the primary path: the only one
// ever created, locked, written to, or listed. Later candidates are shadow
// paths, consulted read-only when looking environments up, with nearer
// paths shadowing farther ones.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MarkerFileName is the sentinel file whose presence (together with
	// the directory itself) marks the primary path as initialized. A
	// .gitignore is used so stores never pollute version control.
	MarkerFileName = ".gitignore"
	// markerContent ignores everything inside the store.
	markerContent = "*"
	// lockFileName is the advisory lock file inside the primary path.
	lockFileName = ".lock"
)

// Store is a registry of environments over an ordered candidate path set.
type Store struct {
	// paths holds the candidates, primary first. Never empty.
	paths []string
}

// New creates a Store over the given candidate directories. The first
// candidate is the primary path. New does not touch the filesystem.
func New(candidates []string) (*Store, error) {
	if len(candidates) == 0 {
		return nil, errors.New("store: no candidate directories")
	}
	paths := make([]string, len(candidates))
	copy(paths, candidates)
	return &Store{paths: paths}, nil
}

// Primary returns the primary path: the target of writes, the lock file,
// and enumeration.
func (s *Store) Primary() string { return s.paths[0] }

// AllPaths returns the full candidate list, primary first.
func (s *Store) AllPaths() []string {
	paths := make([]string, len(s.paths))
	copy(paths, s.paths)
	return paths
}

// IsReady reports whether the primary path exists and carries the marker
// file. Shadow paths are irrelevant to readiness.
func (s *Store) IsReady() bool {
	info, err := os.Stat(s.Primary())
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(s.Primary(), MarkerFileName))
	return err == nil
}

// Init creates the primary directory (with parents) and the marker file.
// It is idempotent: an existing directory is left alone and an existing
// marker file is never truncated or overwritten.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.Primary(), 0o755); err != nil {
		return fmt.Errorf("create store directory %s: %w", s.Primary(), err)
	}

	markerPath := filepath.Join(s.Primary(), MarkerFileName)
	f, err := os.OpenFile(markerPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("create marker file %s: %w", markerPath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(markerContent); err != nil {
		return fmt.Errorf("write marker file %s: %w", markerPath, err)
	}
	return nil
}

// EnvPath returns the path an environment named name has (or would have)
// under the primary path.
func (s *Store) EnvPath(name string) string {
	return filepath.Join(s.Primary(), name)
}

// Exists reports whether an environment named name exists under any
// candidate path.
func (s *Store) Exists(name string) bool {
	_, ok := s.FindEnvPath(name)
	return ok
}

// ExistsInPrimary reports whether an environment named name exists under
// the primary path. Shadow paths are not consulted; use this to gate
// mutations, which only ever touch the primary path.
func (s *Store) ExistsInPrimary(name string) bool {
	_, err := os.Stat(s.EnvPath(name))
	return err == nil
}

// FindEnvPath returns the path of the nearest candidate containing an
// environment named name. The primary path wins over shadow paths, and
// nearer shadow paths win over farther ones.
func (s *Store) FindEnvPath(name string) (string, bool) {
	for _, candidate := range s.paths {
		envPath := filepath.Join(candidate, name)
		if _, err := os.Stat(envPath); err == nil {
			return envPath, true
		}
	}
	return "", false
}

// Contains reports whether path lies inside any candidate directory. It is
// used to check that an externally detected active environment actually
// belongs to this store before a mutation is allowed to proceed.
func (s *Store) Contains(path string) bool {
	for _, candidate := range s.paths {
		if isDescendant(candidate, path) {
			return true
		}
	}
	return false
}

// Lock acquires the cross-process lock scoped to the primary path. The
// primary directory must already exist (call Init first). The caller must
// release the returned lock.
func (s *Store) Lock() (*FileLock, error) {
	return Acquire(filepath.Join(s.Primary(), lockFileName), "venv store")
}

// isDescendant reports whether path equals dir or lies below it.
func isDescendant(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

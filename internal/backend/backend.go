// SPDX-License-Identifier: MPL-2.0

// Package backend orchestrates store resolution, locking, and the external
// provisioning tool behind the meowda CLI commands.
//
// Every public operation follows the same shape: resolve and initialize
// the store for the requested scope, hold the cross-process lock for the
// whole operation, validate preconditions, then perform exactly one
// filesystem mutation or one tool invocation. Nothing is retried and no
// state survives between calls; correctness reduces to the lock plus the
// filesystem.
package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"meowda-cli/internal/issue"
	"meowda-cli/internal/provision"
	"meowda-cli/internal/scope"
	"meowda-cli/internal/store"

	"github.com/charmbracelet/log"
)

type (
	// EnvInfo describes one environment in the primary store path.
	EnvInfo struct {
		Name   string
		Path   string
		Active bool
	}

	// Backend implements the meowda operations over a resolver, a
	// provisioner, and the filesystem.
	Backend struct {
		resolver *scope.Resolver
		tool     provision.Provisioner
		logger   *log.Logger
	}
)

// New creates a Backend. logger may not be nil; pass a discarding logger
// for silent operation.
func New(resolver *scope.Resolver, tool provision.Provisioner, logger *log.Logger) *Backend {
	return &Backend{resolver: resolver, tool: tool, logger: logger}
}

// openStore resolves the candidate paths for sc and returns a Store whose
// primary path is initialized, creating it on first use.
func (b *Backend) openStore(sc scope.Scope) (*store.Store, error) {
	candidates, err := b.resolver.Resolve(sc)
	if err != nil {
		return nil, err
	}
	st, err := store.New(candidates)
	if err != nil {
		return nil, err
	}
	if !st.IsReady() {
		if err := st.Init(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("initialize venv store").
				WithResource(st.Primary()).
				WithSuggestion("Check that the directory and its parents are writable").
				WithSuggestion("Point " + overrideVar(sc) + " at a writable location").
				Wrap(err).
				BuildError()
		}
	}
	return st, nil
}

// Create materializes a new virtual environment named name using the given
// interpreter specification. With clear set, an existing environment of
// the same name is removed first; otherwise an existing name is an error.
func (b *Backend) Create(ctx context.Context, sc scope.Scope, name, python string, clear bool) error {
	st, err := b.openStore(sc)
	if err != nil {
		return err
	}
	lock, err := st.Lock()
	if err != nil {
		return err
	}
	defer lock.Release()

	if st.Exists(name) {
		if !clear {
			return &PreconditionError{
				Detail: fmt.Sprintf("virtual environment %q already exists", name),
				Err:    ErrAlreadyExists,
			}
		}
		// Not atomic: a crash here can leave the store without the
		// environment. The next create starts from a clean slate.
		if err := os.RemoveAll(st.EnvPath(name)); err != nil {
			return fmt.Errorf("remove existing virtual environment: %w", err)
		}
	}

	envPath := st.EnvPath(name)
	if err := b.tool.CreateEnv(ctx, envPath, python, true); err != nil {
		return err
	}

	b.logger.Info("created virtual environment", "name", name, "path", envPath)
	return nil
}

// Remove deletes the environment named name from the primary path. An
// environment that exists only in a shadow path cannot be removed; shadow
// paths are read-only, so reporting success there would leave the
// environment in place.
func (b *Backend) Remove(ctx context.Context, sc scope.Scope, name string) error {
	st, err := b.openStore(sc)
	if err != nil {
		return err
	}
	lock, err := st.Lock()
	if err != nil {
		return err
	}
	defer lock.Release()

	if !st.ExistsInPrimary(name) {
		detail := fmt.Sprintf("virtual environment %q does not exist", name)
		if shadowPath, ok := st.FindEnvPath(name); ok {
			detail = fmt.Sprintf("virtual environment %q exists only in a farther store (%s), which is read-only here", name, shadowPath)
		}
		return &PreconditionError{
			Detail: detail,
			Err:    ErrDoesNotExist,
		}
	}
	if err := os.RemoveAll(st.EnvPath(name)); err != nil {
		return fmt.Errorf("remove virtual environment: %w", err)
	}

	b.logger.Info("removed virtual environment", "name", name)
	return nil
}

// List enumerates the environments under the primary path only. Shadow
// paths are deliberately not included, even though Exists and FindEnvPath
// consult them. activeEnv is the externally detected active environment
// path ("" for none); a listed environment is marked active when its
// canonicalized path matches.
func (b *Backend) List(ctx context.Context, sc scope.Scope, activeEnv string) ([]EnvInfo, error) {
	st, err := b.openStore(sc)
	if err != nil {
		return nil, err
	}
	lock, err := st.Lock()
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	entries, err := os.ReadDir(st.Primary())
	if err != nil {
		return nil, fmt.Errorf("read venv directory: %w", err)
	}

	var envs []EnvInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		envPath := filepath.Join(st.Primary(), entry.Name())
		envs = append(envs, EnvInfo{
			Name:   entry.Name(),
			Path:   envPath,
			Active: activeEnv != "" && samePath(envPath, activeEnv),
		})
	}
	return envs, nil
}

// Install forwards args verbatim to the tool's package install subcommand.
// An environment must be active and must belong to this store.
func (b *Backend) Install(ctx context.Context, sc scope.Scope, activeEnv string, args []string) error {
	return b.packageOp(ctx, sc, activeEnv, args, b.tool.Install)
}

// Uninstall forwards args verbatim to the tool's package uninstall
// subcommand, under the same preconditions as Install.
func (b *Backend) Uninstall(ctx context.Context, sc scope.Scope, activeEnv string, args []string) error {
	return b.packageOp(ctx, sc, activeEnv, args, b.tool.Uninstall)
}

// packageOp holds the store lock while validating the active environment
// and delegating to the tool.
func (b *Backend) packageOp(ctx context.Context, sc scope.Scope, activeEnv string, args []string, op func(context.Context, []string) error) error {
	st, err := b.openStore(sc)
	if err != nil {
		return err
	}
	lock, err := st.Lock()
	if err != nil {
		return err
	}
	defer lock.Release()

	if activeEnv == "" {
		return &PreconditionError{
			Detail: "no virtual environment is currently activated",
			Err:    ErrNoActiveEnv,
		}
	}
	if !st.Contains(canonicalPath(activeEnv)) {
		return &PreconditionError{
			Detail: fmt.Sprintf("current virtual environment (%s) is not managed by this store (%s)", activeEnv, st.Primary()),
			Err:    ErrNotManaged,
		}
	}

	return op(ctx, args)
}

// Dir returns the primary store path for the scope. No lock is taken.
func (b *Backend) Dir(sc scope.Scope) (string, error) {
	st, err := b.openStore(sc)
	if err != nil {
		return "", err
	}
	return st.Primary(), nil
}

// overrideVar names the environment variable that overrides the store
// location for the scope, for use in error suggestions.
func overrideVar(sc scope.Scope) string {
	if sc == scope.Local {
		return scope.EnvLocalVenvDir
	}
	return scope.EnvGlobalVenvDir
}

// canonicalPath resolves symlinks in path, falling back to the cleaned
// path when resolution fails (e.g. the path no longer exists).
func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

// samePath compares two paths after canonicalization.
func samePath(a, b string) bool {
	return canonicalPath(a) == canonicalPath(b)
}

// SPDX-License-Identifier: MPL-2.0

// Package provision invokes the external tool that actually materializes
// virtual environments and manages their packages.
//
// The tool is treated as an opaque dependency: only its exit code is
// inspected, stdout and stderr are passed straight through to the user.
package provision

import (
	"context"
	"fmt"
	"strings"
)

// Provisioner is the capability interface over the external provisioning
// tool. Backend logic depends on this interface rather than on process
// spawning, so tests can substitute an in-memory fake.
type Provisioner interface {
	// CreateEnv materializes a virtual environment at path using the
	// given interpreter specification. When seed is true the environment
	// is seeded with baseline packaging tooling.
	CreateEnv(ctx context.Context, path, python string, seed bool) error

	// Install forwards args verbatim to the tool's package install
	// subcommand, targeting the currently activated environment.
	Install(ctx context.Context, args []string) error

	// Uninstall forwards args verbatim to the tool's package uninstall
	// subcommand, targeting the currently activated environment.
	Uninstall(ctx context.Context, args []string) error
}

// ToolError reports a failed invocation of the provisioning tool: either
// the process could not be spawned, or it exited nonzero. Invocations are
// never retried.
type ToolError struct {
	// Cmd is the command line that failed, for display.
	Cmd string
	// ExitCode is the tool's exit status; -1 when the process could not
	// be started at all.
	ExitCode int
	// Cause is the spawn error, nil when the tool ran but exited nonzero.
	Cause error
}

// Error returns the error message for ToolError.
func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to run `%s`: %v", e.Cmd, e.Cause)
	}
	return fmt.Sprintf("`%s` exited with status %d", e.Cmd, e.ExitCode)
}

// Unwrap returns the spawn error, if any.
func (e *ToolError) Unwrap() error { return e.Cause }

// commandLine renders a binary and its arguments for error messages.
func commandLine(binary string, args []string) string {
	return strings.Join(append([]string{binary}, args...), " ")
}

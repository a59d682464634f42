// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrUvNotAvailable is returned by NewUvTool when the uv binary cannot be
// found or does not answer a version probe.
var ErrUvNotAvailable = errors.New("uv is not available")

// UvTool is the uv-backed Provisioner. Environments are created with
// `uv venv` and packages are managed with `uv pip`.
type UvTool struct {
	binary string
}

// NewUvTool probes the uv binary (via `uv --version`) and returns a
// Provisioner backed by it. binary defaults to "uv" when empty.
func NewUvTool(binary string) (*UvTool, error) {
	if binary == "" {
		binary = "uv"
	}
	if err := exec.Command(binary, "--version").Run(); err != nil {
		return nil, fmt.Errorf("%w (probed %q): %v", ErrUvNotAvailable, binary, err)
	}
	return &UvTool{binary: binary}, nil
}

// Binary returns the uv binary path in use.
func (u *UvTool) Binary() string { return u.binary }

// CreateEnv runs `uv venv <path> --python <python> [--seed]`.
func (u *UvTool) CreateEnv(ctx context.Context, path, python string, seed bool) error {
	args := []string{"venv", path, "--python", python}
	if seed {
		args = append(args, "--seed")
	}
	return u.run(ctx, args)
}

// Install runs `uv pip install <args...>`. The activated environment is
// selected by uv itself through $VIRTUAL_ENV.
func (u *UvTool) Install(ctx context.Context, args []string) error {
	return u.run(ctx, append([]string{"pip", "install"}, args...))
}

// Uninstall runs `uv pip uninstall <args...>`.
func (u *UvTool) Uninstall(ctx context.Context, args []string) error {
	return u.run(ctx, append([]string{"pip", "uninstall"}, args...))
}

// run executes uv with inherited stdio and waits for it to exit. Only the
// exit code is inspected; output is the tool's own.
func (u *UvTool) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, u.binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ToolError{Cmd: commandLine(u.binary, args), ExitCode: exitErr.ExitCode()}
		}
		return &ToolError{Cmd: commandLine(u.binary, args), ExitCode: -1, Cause: err}
	}
	return nil
}

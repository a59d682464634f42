// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeScript creates a small executable shell script for use as a stand-in
// uv binary.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-ins are not portable to Windows")
	}
	path := filepath.Join(t.TempDir(), "fake-uv")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestNewUvToolProbesBinary(t *testing.T) {
	t.Parallel()

	binary := writeScript(t, "exit 0")
	tool, err := NewUvTool(binary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tool.Binary() != binary {
		t.Errorf("expected binary %s, got %s", binary, tool.Binary())
	}
}

func TestNewUvToolUnavailable(t *testing.T) {
	t.Parallel()

	_, err := NewUvTool(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !errors.Is(err, ErrUvNotAvailable) {
		t.Errorf("expected ErrUvNotAvailable, got %v", err)
	}
}

func TestRunReportsNonzeroExit(t *testing.T) {
	t.Parallel()

	binary := writeScript(t, `case "$1" in --version) exit 0;; *) exit 3;; esac`)
	tool, err := NewUvTool(binary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = tool.Install(context.Background(), []string{"numpy"})
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %T", err)
	}
	if toolErr.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", toolErr.ExitCode)
	}
	if toolErr.Cause != nil {
		t.Errorf("expected no spawn error, got %v", toolErr.Cause)
	}
	if !strings.Contains(toolErr.Cmd, "pip install numpy") {
		t.Errorf("expected command line in error, got %q", toolErr.Cmd)
	}
}

func TestCreateEnvArgs(t *testing.T) {
	t.Parallel()

	// The script records its arguments so the uv invocation contract can
	// be checked end to end.
	outFile := filepath.Join(t.TempDir(), "args")
	binary := writeScript(t, `case "$1" in --version) exit 0;; *) echo "$@" > `+outFile+`; exit 0;; esac`)

	tool, err := NewUvTool(binary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tool.CreateEnv(context.Background(), "/tmp/envs/demo", "3.12", true); err != nil {
		t.Fatalf("CreateEnv failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to read recorded args: %v", err)
	}
	got := strings.TrimSpace(string(data))
	want := "venv /tmp/envs/demo --python 3.12 --seed"
	if got != want {
		t.Errorf("expected args %q, got %q", want, got)
	}
}

func TestToolErrorMessages(t *testing.T) {
	t.Parallel()

	exitErr := &ToolError{Cmd: "uv pip install numpy", ExitCode: 1}
	if !strings.Contains(exitErr.Error(), "exited with status 1") {
		t.Errorf("unexpected message: %s", exitErr.Error())
	}

	spawnErr := &ToolError{Cmd: "uv --version", ExitCode: -1, Cause: errors.New("no such file")}
	if !strings.Contains(spawnErr.Error(), "failed to run") {
		t.Errorf("unexpected message: %s", spawnErr.Error())
	}
}

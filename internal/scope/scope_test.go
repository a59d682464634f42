// SPDX-License-Identifier: MPL-2.0

package scope

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeEnv returns a getenv function backed by a map.
func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func fixedWd(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func mkMarkerDir(t *testing.T, base string) string {
	t.Helper()
	dir := filepath.Join(base, ".meowda", "venvs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	return dir
}

func TestParseScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{input: "local", want: Local},
		{input: "global", want: Global},
		{input: "", wantErr: true},
		{input: "LOCAL", wantErr: true},
		{input: "project", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseScope(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got scope %q", tt.input, got)
				}
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected ConfigError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveGlobalOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := NewResolverWith(fakeEnv(map[string]string{EnvGlobalVenvDir: dir}), fixedWd("/"))

	paths, err := r.Resolve(Global)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected exactly one candidate, got %d", len(paths))
	}
	if paths[0] != dir {
		t.Errorf("expected %s, got %s", dir, paths[0])
	}
}

func TestResolveGlobalDefaultXDG(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG layout only applies to Linux and others")
	}

	dataHome := t.TempDir()
	r := NewResolverWith(fakeEnv(map[string]string{"XDG_DATA_HOME": dataHome}), fixedWd("/"))

	paths, err := r.Resolve(Global)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(dataHome, AppName, "venvs")
	if len(paths) != 1 || paths[0] != want {
		t.Errorf("expected [%s], got %v", want, paths)
	}
}

func TestResolveLocalOverrideBypassesWalk(t *testing.T) {
	t.Parallel()

	// A marker directory exists in the working directory hierarchy but
	// the override must win and suppress shadow discovery entirely.
	tree := t.TempDir()
	mkMarkerDir(t, tree)
	work := filepath.Join(tree, "project")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", work, err)
	}

	override := t.TempDir()
	r := NewResolverWith(fakeEnv(map[string]string{EnvLocalVenvDir: override}), fixedWd(work))

	paths, err := r.Resolve(Local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected exactly one candidate with override set, got %v", paths)
	}
	if paths[0] != override {
		t.Errorf("expected %s, got %s", override, paths[0])
	}
}

func TestResolveLocalWalkOrderedNearestFirst(t *testing.T) {
	t.Parallel()

	// Layout: <root>/a/.meowda/venvs and <root>/a/b/.meowda/venvs with the
	// working directory at <root>/a/b/c. Candidates must come back
	// nearest first.
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(a, "b")
	c := filepath.Join(b, "c")
	if err := os.MkdirAll(c, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", c, err)
	}
	farDir := mkMarkerDir(t, a)
	nearDir := mkMarkerDir(t, b)

	r := NewResolverWith(fakeEnv(nil), fixedWd(c))

	paths, err := r.Resolve(Local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 candidates, got %v", paths)
	}
	if paths[0] != nearDir {
		t.Errorf("expected nearest candidate %s first, got %s", nearDir, paths[0])
	}
	if paths[1] != farDir {
		t.Errorf("expected farther candidate %s second, got %s", farDir, paths[1])
	}
}

func TestResolveLocalFallbackWhenNoneFound(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	r := NewResolverWith(fakeEnv(nil), fixedWd(work))

	paths, err := r.Resolve(Local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(work, ".meowda", "venvs")
	if len(paths) != 1 || paths[0] != want {
		t.Errorf("expected fallback [%s], got %v", want, paths)
	}
	// The fallback is advisory only; Resolve must not create it.
	if _, err := os.Stat(want); !os.IsNotExist(err) {
		t.Errorf("expected fallback path to not exist, stat err = %v", err)
	}
}

func TestResolveLocalSkipsUnreadableDirs(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced the same way on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root; permission checks are bypassed")
	}

	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(a, "b")
	if err := os.MkdirAll(b, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", b, err)
	}
	readable := mkMarkerDir(t, a)
	unreadable := mkMarkerDir(t, b)
	if err := os.Chmod(unreadable, 0o000); err != nil {
		t.Fatalf("failed to chmod %s: %v", unreadable, err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(unreadable, 0o755)
	})

	r := NewResolverWith(fakeEnv(nil), fixedWd(b))

	paths, err := r.Resolve(Local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != readable {
		t.Errorf("expected unreadable candidate to be skipped, got %v", paths)
	}
}

func TestResolveUnknownScope(t *testing.T) {
	t.Parallel()

	r := NewResolverWith(fakeEnv(nil), fixedWd("/"))
	if _, err := r.Resolve(Scope("galactic")); err == nil {
		t.Error("expected error for unknown scope")
	}
}

func TestActiveEnvPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := NewResolverWith(fakeEnv(map[string]string{EnvVirtualEnv: dir}), fixedWd("/"))
	if got := r.ActiveEnvPath(); got != dir {
		t.Errorf("expected %s, got %s", dir, got)
	}

	r = NewResolverWith(fakeEnv(nil), fixedWd("/"))
	if got := r.ActiveEnvPath(); got != "" {
		t.Errorf("expected empty path when VIRTUAL_ENV is unset, got %s", got)
	}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"slices"
	"testing"

	"meowda-cli/internal/config"
	"meowda-cli/internal/scope"
)

func TestParsePassthroughArgs(t *testing.T) {
	tests := []struct {
		name        string
		raw         []string
		wantLocal   bool
		wantGlobal  bool
		wantHelp    bool
		wantForward []string
		wantErr     error
	}{
		{
			name:        "plain packages",
			raw:         []string{"numpy", "pandas"},
			wantForward: []string{"numpy", "pandas"},
		},
		{
			name:        "leading local flag",
			raw:         []string{"--local", "numpy"},
			wantLocal:   true,
			wantForward: []string{"numpy"},
		},
		{
			name:        "uv flags pass through",
			raw:         []string{"-r", "requirements.txt"},
			wantForward: []string{"-r", "requirements.txt"},
		},
		{
			name:        "scope flag after first package is forwarded",
			raw:         []string{"numpy", "--local"},
			wantForward: []string{"numpy", "--local"},
		},
		{
			name:        "double dash ends the scan",
			raw:         []string{"--global", "--", "--local"},
			wantGlobal:  true,
			wantForward: []string{"--local"},
		},
		{
			name:     "help flag",
			raw:      []string{"--help"},
			wantHelp: true,
		},
		{
			name:    "conflicting scopes",
			raw:     []string{"--local", "--global", "numpy"},
			wantErr: errScopeFlagsExclusive,
		},
		{
			name: "empty",
			raw:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parsePassthroughArgs(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed.local != tt.wantLocal || parsed.global != tt.wantGlobal || parsed.help != tt.wantHelp {
				t.Errorf("flags = local:%v global:%v help:%v, want local:%v global:%v help:%v",
					parsed.local, parsed.global, parsed.help, tt.wantLocal, tt.wantGlobal, tt.wantHelp)
			}
			if !slices.Equal(parsed.forward, tt.wantForward) {
				t.Errorf("forward = %v, want %v", parsed.forward, tt.wantForward)
			}
		})
	}
}

func TestScopeFromPassthrough(t *testing.T) {
	cfg := config.DefaultConfig()

	sc, err := scopeFromPassthrough(passthroughArgs{local: true}, cfg)
	if err != nil || sc != scope.Local {
		t.Errorf("expected local, got %v (%v)", sc, err)
	}

	sc, err = scopeFromPassthrough(passthroughArgs{global: true}, cfg)
	if err != nil || sc != scope.Global {
		t.Errorf("expected global, got %v (%v)", sc, err)
	}

	// No flag falls back to the configured default.
	sc, err = scopeFromPassthrough(passthroughArgs{}, cfg)
	if err != nil || sc != scope.Global {
		t.Errorf("expected configured default global, got %v (%v)", sc, err)
	}

	cfg.DefaultScope = "local"
	sc, err = scopeFromPassthrough(passthroughArgs{}, cfg)
	if err != nil || sc != scope.Local {
		t.Errorf("expected configured default local, got %v (%v)", sc, err)
	}
}

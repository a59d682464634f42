// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGetReturnsRegisteredIssues(t *testing.T) {
	t.Parallel()

	for _, id := range []Id{UvNotFoundId, ConfigLoadFailedId} {
		if Get(id) == nil {
			t.Errorf("expected issue registered for id %d", id)
		}
		if Get(id).Id() != id {
			t.Errorf("expected issue id %d, got %d", id, Get(id).Id())
		}
	}

	if Get(Id(9999)) != nil {
		t.Error("expected nil for unregistered id")
	}
}

func TestAllCoversRegistry(t *testing.T) {
	t.Parallel()

	if len(All()) != len(issues) {
		t.Errorf("expected %d issues, got %d", len(issues), len(All()))
	}
}

func TestRenderIncludesLinks(t *testing.T) {
	// Swap the markdown renderer for a pass-through so the link assembly
	// is observable without terminal styling.
	original := render
	render = func(in, stylePath string) (string, error) { return in, nil }
	t.Cleanup(func() { render = original })

	out, err := Get(UvNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "uv is not available") {
		t.Errorf("expected issue body in output, got %q", out)
	}
	if !strings.Contains(out, "docs.astral.sh/uv") {
		t.Errorf("expected external link in output, got %q", out)
	}
}

package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaults(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("challenge.announce", map[string]string{
		"InitiatorID": "u1", "TargetID": "u2", "Emoji": "✨",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "<@u1>") || !strings.Contains(got, "<@u2>") {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestRenderMissingKey(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Render("no.such.key", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
	if got := c.RenderOr("no.such.key", "fallback", nil); got != "fallback" {
		t.Fatalf("RenderOr: %q", got)
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := "accept:\n  prompt: \"Pick your weapon!\"\n"
	if err := os.WriteFile(filepath.Join(dir, "override.yaml"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("accept.prompt", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Pick your weapon!" {
		t.Fatalf("override not applied: %q", got)
	}
	// Untouched keys keep their defaults.
	if got, _ := c.Render("accept.not_found", nil); !strings.Contains(got, "not found") {
		t.Fatalf("default lost: %q", got)
	}
}

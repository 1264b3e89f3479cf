package config

import (
	"os"
	"path/filepath"
	"testing"

	"slide/internal/emit"
)

func TestDefaultUsesPrettyFormAndLintEnabled(t *testing.T) {
	cfg := Default()
	if cfg.OutputForm != emit.Pretty {
		t.Fatalf("expected default output form %v, got %v", emit.Pretty, cfg.OutputForm)
	}
	if !cfg.LintEnabled {
		t.Fatalf("expected lint enabled by default")
	}
}

func TestLoadOverridesOutputFormAndDocumentParsers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	contents := `
[emit]
output_form = "latex"
options = ["frac"]

[lint]
enabled = false

[document_parsers]
".md" = "(?s)` + "```slide\\n(.*?)\\n```" + `"

[cache]
dir = ".slide-cache"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputForm != emit.Latex {
		t.Fatalf("expected output form %v, got %v", emit.Latex, cfg.OutputForm)
	}
	if !cfg.Emit.Frac {
		t.Fatalf("expected Frac emit option set")
	}
	if cfg.LintEnabled {
		t.Fatalf("expected lint disabled")
	}
	if _, ok := cfg.DocumentParsers[".md"]; !ok {
		t.Fatalf("expected a .md document parser, got %v", cfg.DocumentParsers)
	}
	if cfg.CacheDir != ".slide-cache" {
		t.Fatalf("expected cache dir %q, got %q", ".slide-cache", cfg.CacheDir)
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("[emit]\n"), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("expected to find manifest, ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("expected manifest in %q, got %q", root, path)
	}
}

func TestLoadFromDirFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir: %v", err)
	}
	if cfg.OutputForm != emit.Pretty {
		t.Fatalf("expected fallback to default config, got %+v", cfg)
	}
}

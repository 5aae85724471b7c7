package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestLoadFillsDefaultsForUndefinedFields(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[project]\ncharset = \"wide\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Charset != CharsetWide {
		t.Fatalf("expected charset wide, got %q", cfg.Charset)
	}
	if cfg.MaxDiagnostics != defaultMaxDiagnostics {
		t.Fatalf("expected default max_diagnostics, got %d", cfg.MaxDiagnostics)
	}
	if len(cfg.SearchPaths) != 0 {
		t.Fatalf("expected no search paths, got %v", cfg.SearchPaths)
	}
}

func TestLoadRejectsInvalidCharset(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[project]\ncharset = \"utf-9000\"\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an invalid charset")
	}
}

func TestLoadReadsSearchPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[search]\npaths = [\"lib\", \"vendor/conf\"]\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.SearchPaths) != 2 || cfg.SearchPaths[0] != "lib" || cfg.SearchPaths[1] != "vendor/conf" {
		t.Fatalf("unexpected search paths: %v", cfg.SearchPaths)
	}
}

func TestDiscoverWalksUpToNearestManifest(t *testing.T) {
	projectRoot := t.TempDir()
	writeManifest(t, projectRoot, "[project]\nmax_diagnostics = 5\n")
	nested := filepath.Join(projectRoot, "a", "b")
	if err := os.MkdirAll(nested, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, gotRoot, found, err := Discover(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected to find the manifest at an ancestor directory")
	}
	if cfg.MaxDiagnostics != 5 {
		t.Fatalf("expected max_diagnostics 5, got %d", cfg.MaxDiagnostics)
	}
	wantRoot, _ := filepath.Abs(projectRoot)
	if gotRoot != wantRoot {
		t.Fatalf("expected root %q, got %q", wantRoot, gotRoot)
	}
}

func TestDiscoverReturnsDefaultsWhenNoManifestExists(t *testing.T) {
	dir := t.TempDir()

	cfg, _, found, err := Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected no manifest to be found")
	}
	want := Default()
	if cfg.Charset != want.Charset || cfg.MaxDiagnostics != want.MaxDiagnostics || len(cfg.SearchPaths) != 0 {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

package driver

import (
	"os"
	"path/filepath"
	"testing"

	"confparser/internal/diag"
)

func countCacheEntries(t *testing.T, cacheDir string) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(cacheDir, "facades"))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	return len(entries)
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestRunSuccessProducesSnapshotAndNoDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.conf", "int x\nx=5\n")

	res, err := Run(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Diagnostics.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", res.Diagnostics.Len())
	}
	if _, ok := res.Snapshot.Lookup("x"); !ok {
		t.Fatalf("expected snapshot to contain 'x'")
	}
}

func TestRunUnknownDirectiveReportsDirectiveUnknown(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.conf", "%bogus\n")

	res, err := Run(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := res.Diagnostics.Items()
	if len(items) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(items))
	}
	if items[0].Code != diag.DirectiveUnknown {
		t.Fatalf("expected DirectiveUnknown, got %v", items[0].Code)
	}
	if items[0].Severity != diag.SevError {
		t.Fatalf("expected SevError, got %v", items[0].Severity)
	}
}

func TestRunRespectsProjectConfigSearchPaths(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "lib")
	if err := os.MkdirAll(libDir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTempFile(t, libDir, "shared.conf", "int shared\nshared=3\n")
	writeTempFile(t, dir, "confparser.toml", "[search]\npaths = [\"lib\"]\n")
	path := writeTempFile(t, dir, "main.conf", "%default \"shared.conf\"\n")

	res, err := Run(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Diagnostics.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d: %+v", res.Diagnostics.Len(), res.Diagnostics.Items())
	}
	if _, ok := res.Snapshot.Lookup("shared"); !ok {
		t.Fatalf("expected 'shared' to be merged in via the configured search path")
	}
}

func TestRunCachesDefaultTargetsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	writeTempFile(t, dir, "shared.conf", "int shared\nshared=9\n")
	path := writeTempFile(t, dir, "main.conf", "%default \"shared.conf\"\n")

	opts := Options{CacheDir: cacheDir}

	first, err := Run(path, opts)
	if err != nil {
		t.Fatalf("first run: unexpected error: %v", err)
	}
	if first.Diagnostics.Len() != 0 {
		t.Fatalf("first run: expected no diagnostics, got %d", first.Diagnostics.Len())
	}
	if got := countCacheEntries(t, cacheDir); got != 1 {
		t.Fatalf("expected one cache entry to be written, got %d", got)
	}

	second, err := Run(path, opts)
	if err != nil {
		t.Fatalf("second run: unexpected error: %v", err)
	}
	if second.Diagnostics.Len() != 0 {
		t.Fatalf("second run: expected no diagnostics, got %d", second.Diagnostics.Len())
	}
	shared, ok := second.Snapshot.Lookup("shared")
	if !ok {
		t.Fatalf("expected 'shared' to be merged in on a cache-hit run too")
	}
	if shared.IntValue != 9 {
		t.Fatalf("expected cache-hit merge to carry the cached value, got %+v", shared)
	}
	if got := countCacheEntries(t, cacheDir); got != 1 {
		t.Fatalf("expected the cache-hit run not to write a second entry, got %d", got)
	}
}

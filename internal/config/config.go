// Package config loads confparser.toml (SPEC_FULL §6.2): project-wide
// charset selection, diagnostic limits and the directive search path.
// Grounded on internal/project's surge.toml loader (BurntSushi/toml plus
// MetaData.IsDefined for presence checks), replacing its module/dependency
// resolution machinery, which has no Conf equivalent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the config file discovered by walking up from the input
// file's directory, mirroring how a module manifest is discovered.
const ManifestName = "confparser.toml"

// Charset values accepted by [project].charset.
const (
	CharsetNarrow = "narrow"
	CharsetWide   = "wide"
)

const defaultMaxDiagnostics = 100

// Config is the resolved, defaulted project configuration.
type Config struct {
	Charset        string
	MaxDiagnostics int
	SearchPaths    []string
}

// Default returns the configuration used when no confparser.toml is found;
// absence of the file is not an error (SPEC_FULL §6.2).
func Default() Config {
	return Config{Charset: CharsetNarrow, MaxDiagnostics: defaultMaxDiagnostics}
}

type fileFormat struct {
	Project struct {
		Charset        string `toml:"charset"`
		MaxDiagnostics int    `toml:"max_diagnostics"`
	} `toml:"project"`
	Search struct {
		Paths []string `toml:"paths"`
	} `toml:"search"`
}

// ErrInvalidCharset is returned when [project].charset names anything
// other than "narrow" or "wide".
type ErrInvalidCharset struct{ Value string }

func (e *ErrInvalidCharset) Error() string {
	return fmt.Sprintf("config: invalid [project].charset %q: want %q or %q", e.Value, CharsetNarrow, CharsetWide)
}

// Load parses path into a Config, filling in defaults for any field the
// file leaves undefined.
func Load(path string) (Config, error) {
	var raw fileFormat
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	cfg := Default()

	if meta.IsDefined("project", "charset") {
		charset := strings.TrimSpace(raw.Project.Charset)
		if charset != CharsetNarrow && charset != CharsetWide {
			return Config{}, fmt.Errorf("%s: %w", path, &ErrInvalidCharset{Value: charset})
		}
		cfg.Charset = charset
	}
	if meta.IsDefined("project", "max_diagnostics") {
		cfg.MaxDiagnostics = raw.Project.MaxDiagnostics
	}
	if meta.IsDefined("search", "paths") {
		cfg.SearchPaths = append([]string(nil), raw.Search.Paths...)
	}
	return cfg, nil
}

// Discover walks up from startDir looking for ManifestName, the same
// nearest-ancestor search a module manifest uses. It returns Default()
// with found=false if no confparser.toml is found before reaching the
// filesystem root. root is the directory the manifest was found in (so
// callers can resolve SearchPaths, which are relative to it); when
// found is false, root is startDir itself.
func Discover(startDir string) (cfg Config, root string, found bool, err error) {
	dir, absErr := filepath.Abs(startDir)
	if absErr != nil {
		return Config{}, "", false, absErr
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			cfg, err = Load(candidate)
			return cfg, dir, true, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), startDir, false, nil
		}
		dir = parent
	}
}

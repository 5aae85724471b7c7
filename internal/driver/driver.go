// Package driver orchestrates one end-to-end parse for the CLI: it
// discovers confparser.toml, builds an internal/interp.Parser wired to
// the project's search paths, runs it, and packages the outcome as a
// diag.Bag plus a facade snapshot. This is the "internal/driver
// coordinates bag collection per parsed file and transports diagnostic
// data to CLI commands" layer internal/diag's package doc describes;
// cmd/confparser calls into this instead of internal/interp directly.
package driver

import (
	"errors"
	"path/filepath"

	"confparser/internal/cache"
	"confparser/internal/config"
	"confparser/internal/diag"
	"confparser/internal/directive"
	"confparser/internal/facade"
	"confparser/internal/intrinsic"
	"confparser/internal/interp"
	"confparser/internal/source"
)

// Options configures a Run call. Zero value runs with defaults: charset
// and search paths from a discovered confparser.toml (or config.Default()
// if none is found), diagnostics capped at that config's MaxDiagnostics.
type Options struct {
	// ProjectDir overrides where confparser.toml discovery starts; if
	// empty, discovery starts at the input file's own directory.
	ProjectDir string
	// SearchPaths, if non-empty, overrides the discovered config's
	// search.paths entirely.
	SearchPaths []string
	// Charset, if non-empty, overrides the discovered config's charset
	// (charset.Narrow or charset.Wide).
	Charset string
	// MaxDiagnostics, if non-zero, overrides the discovered config's
	// diagnostic cap.
	MaxDiagnostics int
	// CacheDir, if non-empty, roots the %use/%default facade cache
	// (SPEC_FULL §4.9) at this directory instead of the OS-standard
	// XDG_CACHE_HOME location. Tests set this to a t.TempDir() to keep
	// cache state isolated between runs.
	CacheDir string
}

// Result is everything a CLI command needs after a parse: the facade
// snapshot for rendering/dumping, and the diagnostics collected along the
// way (at most one entry in the current fail-fast evaluator, per
// SPEC_FULL §7, but callers should always range over Diagnostics rather
// than assume a count).
type Result struct {
	Config      config.Config
	Files       *source.FileSet
	Snapshot    facade.Node
	Diagnostics *diag.Bag
}

// Run parses path and returns a Result. err is non-nil only for failures
// that prevent any diagnostic from being produced at all (e.g. the
// project config itself is malformed); a failure to parse the Conf
// source is reported through Result.Diagnostics instead, not through err.
func Run(path string, opts Options) (*Result, error) {
	startDir := opts.ProjectDir
	if startDir == "" {
		startDir = filepath.Dir(path)
	}
	cfg, root, err := discover(startDir)
	if err != nil {
		return nil, err
	}
	searchPaths := cfg.SearchPaths
	if len(opts.SearchPaths) > 0 {
		searchPaths = opts.SearchPaths
	}

	charsetMode := cfg.Charset
	if opts.Charset != "" {
		charsetMode = opts.Charset
	}

	maxDiagnostics := cfg.MaxDiagnostics
	if opts.MaxDiagnostics != 0 {
		maxDiagnostics = opts.MaxDiagnostics
	}

	fs := source.NewFileSet()
	parser := interp.NewParser(fs)
	parser.SearchPaths = absoluteSearchPaths(root, searchPaths)
	parser.Charset = charsetMode
	parser.Cache = openCache(opts.CacheDir)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	scope, parseErr := parser.Parse(path)
	if parseErr != nil {
		diag.ReportError(reporter, classify(parseErr), spanOf(parseErr), parseErr.Error()).Emit()
		return &Result{Config: cfg, Files: fs, Diagnostics: bag}, nil
	}

	return &Result{
		Config:      cfg,
		Files:       fs,
		Snapshot:    facade.Snapshot(scope),
		Diagnostics: bag,
	}, nil
}

// openCache opens the %use/%default facade cache, returning nil (caching
// disabled) rather than an error when the cache directory can't be
// created — an unwritable cache degrades Run to always-miss, it doesn't
// fail the parse.
func openCache(dir string) *cache.DiskCache {
	var (
		dc  *cache.DiskCache
		err error
	)
	if dir != "" {
		dc, err = cache.OpenDiskCacheAt(dir)
	} else {
		dc, err = cache.OpenDiskCache("confparser")
	}
	if err != nil {
		return nil
	}
	return dc
}

// discover wraps config.Discover, dropping the found flag: a missing
// confparser.toml is not an error and Run proceeds with config.Default().
func discover(startDir string) (config.Config, string, error) {
	cfg, root, _, err := config.Discover(startDir)
	return cfg, root, err
}

// absoluteSearchPaths resolves confparser.toml's [search].paths — which
// are relative to the directory the manifest was discovered in — against
// root, so internal/interp's resolveTarget can filepath.Join them
// directly regardless of the process's current working directory.
func absoluteSearchPaths(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(root, p)
	}
	return out
}

// spanOf extracts the offending line's span from err, if it carries one.
func spanOf(err error) source.Span {
	var pe *interp.ParseError
	if errors.As(err, &pe) {
		return pe.Span
	}
	return source.Span{}
}

// classify maps a parse failure onto the diag.Code taxonomy (SPEC_FULL
// §7). Only the error shapes this port actually constructs are
// recognized by type; anything else (malformed-line invariant errors
// internal to internal/eval) falls back to a generic code rather than
// guessing from message text.
func classify(err error) diag.Code {
	var memberErr *intrinsic.MemberNotFoundError
	if errors.As(err, &memberErr) {
		return diag.ResUnresolvedMember
	}
	var pe *interp.ParseError
	if errors.As(err, &pe) {
		return classifyMessage(pe.Err)
	}
	return diag.UnknownCode
}

func classifyMessage(err error) diag.Code {
	switch {
	case errors.Is(err, interp.ErrUnknownDirective):
		return diag.DirectiveUnknown
	case errors.Is(err, directive.ErrMissingPath):
		return diag.DirectiveBadArgs
	default:
		return diag.UnknownCode
	}
}

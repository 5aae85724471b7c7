// Package interp is the line dispatcher and file-level entry point:
// confparser.cpp's ConfParser::Parse, rewritten around the tagged-variant
// object model and explicit Go error returns. It reads a file, classifies
// each trimmed line by its first character, and routes it to a directive
// handler, a scope-open/close, or the expression evaluator.
package interp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"confparser/internal/cache"
	"confparser/internal/charset"
	"confparser/internal/directive"
	"confparser/internal/eval"
	"confparser/internal/facade"
	"confparser/internal/intrinsic"
	"confparser/internal/lex"
	"confparser/internal/object"
	"confparser/internal/source"
)

// Line-leading control characters, ported from global.hpp's TOKEN_CHAR_*.
const (
	charComment    = '#'
	charSpecial    = '%'
	charScopeBegin = '{'
	charScopeEnd   = '}'
)

const keywordClass = object.KeywordClass

// Parser evaluates Conf source files into a scope tree rooted at the
// shared intrinsic scope (spec §5, §6's entry point).
type Parser struct {
	// SearchPaths are tried, in order, for a %use/%default target that
	// isn't found relative to the including file's own directory.
	SearchPaths []string

	// Charset selects how source bytes are decoded before lexing
	// (charset.Narrow or charset.Wide); empty behaves as charset.Narrow.
	Charset string

	// Cache, if non-nil, is consulted before re-parsing a %use/%default
	// target and populated with the result afterwards (SPEC_FULL §4.9). A
	// nil Cache (the zero value) simply disables caching; DiskCache's own
	// methods are nil-receiver-safe so no call site needs to branch on it.
	Cache *cache.DiskCache

	Files *source.FileSet

	intrinsics *intrinsic.Registry
	global     *object.Scope
}

// NewParser builds a Parser over the process-wide intrinsic registry,
// loading files through fs (a fresh FileSet is created if fs is nil).
func NewParser(fs *source.FileSet) *Parser {
	if fs == nil {
		fs = source.NewFileSet()
	}
	return &Parser{Files: fs, intrinsics: intrinsic.Shared()}
}

// GlobalScope returns the shared global scope, constructing it lazily
// under the shared intrinsic scope. Repeated Parse calls on the same
// Parser reuse this scope, matching spec §6's "repeated calls reuse the
// intrinsic scope".
func (p *Parser) GlobalScope() *object.Scope {
	if p.global == nil {
		p.global = object.NewScope("", p.intrinsics.Scope)
	}
	return p.global
}

// Parse reads path and evaluates it into the shared global scope.
func (p *Parser) Parse(path string) (*object.Scope, error) {
	scope := p.GlobalScope()
	if err := p.parseInto(path, scope); err != nil {
		return nil, err
	}
	return scope, nil
}

func (p *Parser) parseInto(path string, scope *object.Scope) error {
	raw, err := p.readFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	text := lex.RemoveCarriageReturn(string(raw))
	lines := strings.Split(text, "\n")
	dir := filepath.Dir(path)

	if err := p.prefetchDirectiveTargets(dir, lines); err != nil {
		return err
	}

	file, _ := p.Files.GetByPath(path)
	lineErr := func(lineNo int, err error) error {
		pe := &ParseError{Path: path, Line: lineNo + 1, Err: err}
		if file != nil {
			pe.Span = file.LineSpan(uint32(lineNo + 1)) //nolint:gosec // bounded by len(lines)
		}
		return pe
	}

	currentScope := scope
	for lineNo, rawLine := range lines {
		line := lex.Trim(rawLine)
		if line == "" {
			continue
		}

		switch line[0] {
		case charComment:
			continue
		case charSpecial:
			if err := p.runDirective(dir, currentScope, line); err != nil {
				return lineErr(lineNo, err)
			}
		case charScopeBegin:
			continue
		case charScopeEnd:
			if currentScope == scope || currentScope.Parent == nil {
				return lineErr(lineNo, fmt.Errorf("'}' with no enclosing scope"))
			}
			currentScope = currentScope.Parent
		default:
			next, err := p.runStatement(currentScope, line)
			if err != nil {
				return lineErr(lineNo, err)
			}
			if next != nil {
				currentScope = next
			}
		}
	}
	return nil
}

// parseTarget resolves a %use/%default argument to a file and returns its
// top-level scope, consulting p.Cache first (SPEC_FULL §4.9): the target
// file's content is hashed, and a cache hit is materialized back into a
// live scope and returned without re-lexing or re-evaluating the file. A
// cache miss parses normally and stores the resulting snapshot under the
// same digest for the next lookup. A nil Cache (the default) always
// misses, so this degrades to a plain re-parse with no behavior change.
func (p *Parser) parseTarget(dir, target string) (*object.Scope, error) {
	resolved := p.resolveTarget(dir, target)

	content, err := p.readFile(resolved)
	if err != nil {
		return nil, err
	}
	digest := cache.Sum(content)
	if snapshot, found, err := p.Cache.Get(digest); err == nil && found {
		return facade.Materialize(snapshot, p.intrinsics), nil
	}

	sub := object.NewScope("", p.intrinsics.Scope)
	if err := p.parseInto(resolved, sub); err != nil {
		return nil, err
	}
	// A cache write failure (disk full, permissions) doesn't invalidate
	// the parse that just succeeded; it only costs the next lookup its hit.
	_ = p.Cache.Put(digest, facade.Snapshot(sub))
	return sub, nil
}

// runDirective tokenizes a '%'-led line and dispatches it through the
// directive package's handler table.
func (p *Parser) runDirective(dir string, scope *object.Scope, line string) error {
	tokens := lex.FilterSplit(line, lex.DispatchFilter, true, true)
	if len(tokens) < 2 {
		return fmt.Errorf("directive: empty directive line %q", line)
	}
	verb := tokens[1]
	handler, ok := directive.Lookup(verb)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDirective, verb)
	}
	ctx := &directive.Context{
		Scope: scope,
		Parse: func(target string) (*object.Scope, error) {
			return p.parseTarget(dir, target)
		},
	}
	return handler(ctx, tokens)
}

// runStatement handles the `class` keyword, type-prefixed instance
// declarations, and bare expressions (spec §4.7's "otherwise" row),
// returning the new current scope when the line opens one (a `class`
// declaration), or nil when the current scope is unchanged.
func (p *Parser) runStatement(scope *object.Scope, line string) (*object.Scope, error) {
	tokens := lex.FilterSplit(line, lex.DispatchFilter, true, true)
	if len(tokens) == 0 {
		return nil, nil
	}

	if tokens[0] == keywordClass {
		if len(tokens) < 2 {
			return nil, fmt.Errorf("class: expected a type name")
		}
		return p.declareClass(scope, tokens[1]), nil
	}

	text := line
	if first, ok := scope.GetByName(tokens[0], object.KindNone); ok {
		if ty, isType := first.(*object.Type); isType {
			if len(tokens) < 2 {
				return nil, fmt.Errorf("%q: expected an instance name", tokens[0])
			}
			inst := ty.CreateInstance(tokens[1])
			scope.AddChild(inst)
			if idx := strings.IndexAny(line, " \t"); idx >= 0 {
				text = line[idx+1:]
			}
		}
	}

	ev := eval.New(scope)
	if _, err := ev.EvalLine(lex.Split(text)); err != nil {
		return nil, err
	}
	// The result, if temporary, needs no manual release: it just falls
	// out of scope and is reclaimed by the garbage collector.
	return nil, nil
}

// declareClass builds a new user Type inheriting the object intrinsic
// (confparser.cpp: `*ty += *object` then `AddChild`), installs it as a
// child of scope, and returns its embedded Scope as the new current scope.
func (p *Parser) declareClass(scope *object.Scope, name string) *object.Scope {
	ty := object.NewType(name, scope)
	if objectType, ok := p.intrinsics.Type(object.TypeNameObject); ok {
		ty.Merge(&objectType.Scope)
	}
	scope.AddChild(ty)
	return &ty.Scope
}

// readFile returns path's content as UTF-8 bytes, decoding wide
// (UTF-16) sources first. Narrow sources are loaded through Files
// directly so its BOM/CRLF normalization applies; wide sources are
// decoded before being added, since Files has no notion of UTF-16 (its
// own BOM/CRLF handling is bypassed here — an accepted imprecision for
// wide files' diagnostic line spans, noted in DESIGN.md).
func (p *Parser) readFile(path string) ([]byte, error) {
	if f, ok := p.Files.GetByPath(path); ok {
		return f.Content, nil
	}
	if p.Charset == charset.Wide {
		raw, err := os.ReadFile(path) //nolint:gosec // path resolved from caller-controlled source tree
		if err != nil {
			return nil, err
		}
		decoded, err := charset.Decode(raw, charset.Wide)
		if err != nil {
			return nil, err
		}
		id := p.Files.Add(path, decoded, 0)
		return p.Files.Get(id).Content, nil
	}
	id, err := p.Files.Load(path)
	if err != nil {
		return nil, err
	}
	return p.Files.Get(id).Content, nil
}

// resolveTarget finds a %use/%default path relative to the including
// file's own directory first, then SearchPaths in order (SPEC_FULL's
// directive file resolution order).
func (p *Parser) resolveTarget(dir, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	candidate := filepath.Join(dir, target)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	for _, sp := range p.SearchPaths {
		candidate = filepath.Join(sp, target)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(dir, target)
}

// prefetchDirectiveTargets warms the OS file cache for every
// %use/%default target referenced in lines, concurrently, ahead of the
// sequential evaluation pass that will load them one at a time through
// Files. This only overlaps I/O latency; evaluation order and semantics
// are unaffected (SPEC_FULL §4.10).
func (p *Parser) prefetchDirectiveTargets(dir string, lines []string) error {
	seen := make(map[string]bool)
	var targets []string
	for _, rawLine := range lines {
		line := lex.Trim(rawLine)
		if line == "" || line[0] != charSpecial {
			continue
		}
		tokens := lex.FilterSplit(line, lex.DispatchFilter, true, true)
		if len(tokens) < 3 {
			continue
		}
		verb := tokens[1]
		if verb != "use" && verb != "default" {
			continue
		}
		target := p.resolveTarget(dir, lex.Unquote(tokens[2]))
		if seen[target] {
			continue
		}
		seen[target] = true
		targets = append(targets, target)
	}
	if len(targets) == 0 {
		return nil
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, target := range targets {
		if _, ok := p.Files.GetByPath(target); ok {
			continue // already loaded, nothing to prefetch
		}
		g.Go(func() error {
			if _, err := os.ReadFile(target); err != nil { //nolint:gosec // target resolved from source under caller's control
				return fmt.Errorf("prefetch %q: %w", target, err)
			}
			return nil
		})
	}
	return g.Wait()
}

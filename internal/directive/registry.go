// Package directive dispatches the `%`-prefixed directive lines recognized
// by the line dispatcher (spec §4.7/§4.8): use, default, define, type and
// function. Grounded on confparser.cpp's ConfParser::Initialize, which
// populates SpecialTokensMap with exactly these five verbs.
package directive

import (
	"errors"
	"fmt"

	"confparser/internal/lex"
	"confparser/internal/object"
)

// ErrMissingPath is wrapped into the error returned when a use/default
// directive line doesn't carry a quoted path argument.
var ErrMissingPath = errors.New("directive: expects a quoted path argument")

// ParseFunc parses a referenced file into its own global scope. It is
// supplied by the interpreter so this package never imports it back.
type ParseFunc func(path string) (*object.Scope, error)

// Context is the state a directive handler needs: the scope it runs in
// and a way to recursively parse another file.
type Context struct {
	Scope *object.Scope
	Parse ParseFunc
}

// Handler implements one directive verb. tokens is the full tokenized
// directive line, e.g. ["%", "default", `"lib.conf"`].
type Handler func(ctx *Context, tokens []string) error

var handlers = map[string]Handler{
	"use":      handleUse,
	"default":  handleDefault,
	"define":   handleDefine,
	"type":     handleType,
	"function": handleFunction,
}

// Lookup returns the handler registered for verb, if any.
func Lookup(verb string) (Handler, bool) {
	h, ok := handlers[verb]
	return h, ok
}

// Verbs lists every recognized directive verb, for diagnostics and help
// text.
func Verbs() []string {
	return []string{"use", "default", "define", "type", "function"}
}

// handleUse parses the referenced file then folds it in exactly like
// default — confparser.cpp's "use" entry is a direct forward to "default".
func handleUse(ctx *Context, tokens []string) error {
	return handleDefault(ctx, tokens)
}

// handleDefault parses the referenced file and merges its global scope
// into the current scope (spec §4.6's Merge, spec §4.8).
func handleDefault(ctx *Context, tokens []string) error {
	path, err := targetPath(tokens)
	if err != nil {
		return err
	}
	other, err := ctx.Parse(path)
	if err != nil {
		return fmt.Errorf("directive: default %q: %w", path, err)
	}
	ctx.Scope.Merge(other)
	return nil
}

// handleDefine, handleType and handleFunction are reserved: spec §4.8
// marks them no-op for this specification.
func handleDefine(_ *Context, _ []string) error   { return nil }
func handleType(_ *Context, _ []string) error     { return nil }
func handleFunction(_ *Context, _ []string) error { return nil }

func targetPath(tokens []string) (string, error) {
	if len(tokens) < 3 {
		return "", fmt.Errorf("%w: %q", ErrMissingPath, tokens)
	}
	return lex.Unquote(tokens[2]), nil
}

package interp

import (
	"errors"
	"fmt"

	"confparser/internal/source"
)

// ErrUnknownDirective is wrapped into any "%<verb>" line whose verb isn't
// registered in internal/directive (spec §4.8's directive table).
var ErrUnknownDirective = errors.New("directive: unknown verb")

// ParseError is the single fatal error a Parser.Parse call can return. It
// carries the source.Span of the offending line so a CLI can report it as
// a diag.Diagnostic (SPEC_FULL §7's "every fatal error additionally
// carries the source.Span of the offending token") without this package
// importing internal/diag itself.
type ParseError struct {
	Path string
	Line int
	Span source.Span
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Package charset selects between the two character-set modes the
// original ConfParser chose at compile time via its UNICODE macro
// (global.hpp: CP_CHAR_T is char when UNICODE is undefined, wchar_t
// when it's defined). SPEC_FULL.md §6.2 turns that into a runtime
// confparser.toml option instead: "narrow" files are read as plain
// UTF-8/ASCII bytes, "wide" files are UTF-16 (with or without a BOM)
// and are transcoded to UTF-8 before reaching the lexer, so the rest of
// the pipeline (internal/lex, internal/source) only ever sees UTF-8.
package charset

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Mode names accepted by [project].charset in confparser.toml.
const (
	Narrow = "narrow"
	Wide   = "wide"
)

// Decode converts raw file bytes into UTF-8 according to mode. Narrow
// content passes through unchanged. Wide content is treated as UTF-16,
// auto-detecting endianness from a byte-order mark and defaulting to
// little-endian when none is present (matching Windows wchar_t's native
// order, the original tool's only wide-build target).
func Decode(content []byte, mode string) ([]byte, error) {
	switch mode {
	case "", Narrow:
		return content, nil
	case Wide:
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := decoder.Bytes(content)
		if err != nil {
			return nil, fmt.Errorf("charset: decode wide (UTF-16) content: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("charset: unknown mode %q (want %q or %q)", mode, Narrow, Wide)
	}
}

package lex

import "strings"

// FilterSpec maps a delimiter rune to whether a split on that rune should
// also emit the delimiter itself as its own single-rune token (true) or
// simply discard it (false). A rune absent from the map is not a
// delimiter at all and is copied into the current token like any other
// character.
type FilterSpec map[rune]bool

// NewFilterSpec builds a FilterSpec from chars, a string of delimiter
// runes, each mapped to keep. It mirrors global.hpp's
// FilterSplitFilter(const string_t&, bool) constructor: a single keep/
// discard verdict applied uniformly to every rune in chars.
func NewFilterSpec(chars string, keep bool) FilterSpec {
	spec := make(FilterSpec, len(chars))
	for _, ch := range chars {
		spec[ch] = keep
	}
	return spec
}

// DispatchFilter is the delimiter set confparser.cpp's ConfParser::Parse
// main loop applies via filtersplit(text, {" =#%+-*/.", {false}, true},
// true, true): the space is discarded (a tab is not a delimiter), every other delimiter
// ('=','#','%','+','-','*','/','.') is kept as its own single-character
// token. It is used to tokenize the directive verb and the leading
// type/keyword name ahead of expression evaluation (spec §4.7's line
// dispatcher), never to tokenize a full expression.
var DispatchFilter = buildDispatchFilter()

func buildDispatchFilter() FilterSpec {
	spec := NewFilterSpec("=#%+-*/.", true)
	spec[' '] = false
	return spec
}

// FilterSplit ports global.hpp's filtersplit template. Unlike Split
// (operator_split), which fuses runs of same-class punctuation into one
// token, FilterSplit treats spec as the sole source of truth for where a
// token ends: a rune not in spec is appended to the current token
// verbatim, a rune in spec always flushes the current token and, only
// when spec marks it kept, is additionally emitted as its own
// single-rune token.
//
// honorStrings makes a StringQuote-delimited span immune to delimiter
// splitting, exactly like the string-literal handling in Split; keepQuote
// controls whether the quote characters themselves are retained in the
// resulting token. Unlike the original, which always emits the
// possibly-empty trailing bucket, FilterSplit drops empty tokens: every
// call site here indexes the result positionally and relies on there
// being no empty placeholders between real tokens.
func FilterSplit(input string, spec FilterSpec, honorStrings, keepQuote bool) []string {
	var out []string
	var cur strings.Builder
	inString := false

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for _, ch := range input {
		switch {
		case honorStrings && ch == StringQuote:
			inString = !inString
			if keepQuote {
				cur.WriteRune(ch)
			}
			if !inString {
				flush()
			}
		case inString:
			cur.WriteRune(ch)
		default:
			if keep, isDelim := spec[ch]; isDelim {
				flush()
				if keep {
					out = append(out, string(ch))
				}
				continue
			}
			cur.WriteRune(ch)
		}
	}
	flush()
	return out
}

package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical: string literals, tokenization.
	LexInfo               Code = 1000
	LexUnterminatedString Code = 1001

	// Parenthesization.
	ParenUnbalanced Code = 1500

	// Resolution: identifiers and members that cannot be found.
	ResUnresolvedSymbol Code = 2000
	ResUnresolvedMember Code = 2001

	// Operator selection.
	OpMissing      Code = 2500
	OpTypeMismatch Code = 2501

	// Directives.
	DirectiveUnknown Code = 3000
	DirectiveBadArgs Code = 3001

	// Literal typing / intrinsics.
	LiteralNoCompatibleType Code = 3500
	LiteralSetFromStringErr Code = 3501

	// File I/O.
	IOReadFailed Code = 4000
)

var codeDescription = map[Code]string{
	UnknownCode:             "unknown error",
	LexInfo:                 "lexical note",
	LexUnterminatedString:   "unterminated string literal",
	ParenUnbalanced:         "unbalanced parentheses",
	ResUnresolvedSymbol:     "unresolved symbol",
	ResUnresolvedMember:     "unresolved member",
	OpMissing:               "no applicable operator overload",
	OpTypeMismatch:          "operand type does not match operator signature",
	DirectiveUnknown:        "unknown directive",
	DirectiveBadArgs:        "malformed directive arguments",
	LiteralNoCompatibleType: "no intrinsic type is compatible with this literal",
	LiteralSetFromStringErr: "literal payload could not be parsed",
	IOReadFailed:            "failed to read source file",
}

// ID renders the code as a short, grep-friendly string such as "RES2000".
func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 1500:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 1500 && ic < 2000:
		return fmt.Sprintf("PAR%04d", ic)
	case ic >= 2000 && ic < 2500:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 2500 && ic < 3000:
		return fmt.Sprintf("OPR%04d", ic)
	case ic >= 3000 && ic < 3500:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 3500 && ic < 4000:
		return fmt.Sprintf("LIT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

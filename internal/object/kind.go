// Package object implements the Conf object model: scopeables, scopes,
// types, instances, functions and operators.
//
// The original implementation models this as a deep inheritance chain
// (Scopeable <- Scope <- Type; Scope <- Function <- Operator). Here it is a
// tagged variant: every concrete struct embeds base (name/temp/span
// bookkeeping) and reports its own Kind; lookup filters and Scope.Merge
// dispatch explicitly on that tag, while Clone is a method of each struct.
package object

// Kind identifies which concrete scopeable a Node is.
type Kind uint8

const (
	// KindNone is a lookup-filter sentinel; it is never a stored kind.
	KindNone Kind = iota
	KindScope
	KindType
	KindInstance
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindScope:
		return "scope"
	case KindType:
		return "type"
	case KindInstance:
		return "instance"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Intrinsic type names. A class declaration is not checked against them: a
// class of the same name shadows the intrinsic for lookups from its scope.
const (
	TypeNameString = "string"
	TypeNameInt    = "int"
	TypeNameFloat  = "float"
	TypeNameObject = "object"
	TypeNameExpr   = "expr"
)

// OperatorNamePrefix is prepended to the operator symbol to form the
// scope-lookup name, e.g. "operator+" for the binary '+' operator.
const OperatorNamePrefix = "operator"

// KeywordClass is the only recognized line-leading keyword.
const KeywordClass = "class"

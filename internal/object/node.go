package object

import "confparser/internal/source"

// Node is anything that can be inserted into a Scope's child list: a Scope
// itself, a Type, an Instance, or a Function/Operator.
type Node interface {
	Kind() Kind
	Name() string
	IsTemporary() bool
	SetTemporary(bool)
	Span() source.Span
	SetSpan(source.Span)

	// Clone deep-copies the node under a new name. The clone is never
	// automatically registered anywhere; the caller adds it as a child.
	Clone(name string) Node
}

// base carries the fields every Scopeable has in the original model:
// a name and the temporary flag. Span is carried for diagnostics only
// and never participates in lookup, merge, or clone equality.
type base struct {
	name string
	temp bool
	span source.Span
}

func (b *base) Name() string           { return b.name }
func (b *base) IsTemporary() bool      { return b.temp }
func (b *base) SetTemporary(v bool)    { b.temp = v }
func (b *base) Span() source.Span      { return b.span }
func (b *base) SetSpan(sp source.Span) { b.span = sp }

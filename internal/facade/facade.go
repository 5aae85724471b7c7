// Package facade produces a read-only, serializable snapshot of a scope
// tree (spec §6's object-model surface: walk children, inspect kind, type
// and payload, without exposing the live object graph). A Node here owns
// no pointers back into internal/object; it is safe to hold, diff, encode
// and decode long after the Parser that produced it is gone, which is the
// property internal/cache's disk snapshots depend on.
package facade

import "confparser/internal/object"

// Kind mirrors object.Kind as a stable string so the encoded form survives
// renumbering of the Kind enum.
type Kind string

const (
	KindScope    Kind = "scope"
	KindType     Kind = "type"
	KindInstance Kind = "instance"
	KindFunction Kind = "function"
)

func kindOf(k object.Kind) Kind {
	switch k {
	case object.KindScope:
		return KindScope
	case object.KindType:
		return KindType
	case object.KindInstance:
		return KindInstance
	case object.KindFunction:
		return KindFunction
	default:
		return Kind(k.String())
	}
}

// Node is one entry of a flattened scope tree. Only the fields relevant to
// its Kind are populated; the rest are left at their zero value and
// omitted by both encoders.
type Node struct {
	Name     string `msgpack:"name" json:"name"`
	Kind     Kind   `msgpack:"kind" json:"kind"`
	Children []Node `msgpack:"children,omitempty" json:"children,omitempty"`

	// Instance fields.
	TypeName    string  `msgpack:"type,omitempty" json:"type,omitempty"`
	PayloadKind string  `msgpack:"payload_kind,omitempty" json:"payload_kind,omitempty"`
	StringValue string  `msgpack:"string_value,omitempty" json:"string_value,omitempty"`
	IntValue    int64   `msgpack:"int_value,omitempty" json:"int_value,omitempty"`
	FloatValue  float64 `msgpack:"float_value,omitempty" json:"float_value,omitempty"`

	// Operator fields (Kind == KindFunction).
	Priority int    `msgpack:"priority,omitempty" json:"priority,omitempty"`
	Fixity   string `msgpack:"fixity,omitempty" json:"fixity,omitempty"`
}

// Snapshot walks n (and everything reachable under it) into a detached
// Node tree. Scope and Type children are snapshotted recursively in
// insertion order; an Instance's sub-instances are snapshotted as its
// Children so a facade consumer can walk member values the same way it
// walks scope members.
func Snapshot(n object.Node) Node {
	switch v := n.(type) {
	case *object.Scope:
		return snapshotScope(v)
	case *object.Type:
		out := snapshotScope(&v.Scope)
		out.Kind = KindType
		return out
	case *object.Instance:
		return snapshotInstance(v)
	case *object.Operator:
		return Node{
			Name:     v.Name(),
			Kind:     KindFunction,
			Priority: v.Priority,
			Fixity:   v.Fixity.String(),
		}
	case *object.Function:
		return Node{Name: v.Name(), Kind: KindFunction}
	default:
		return Node{Name: n.Name(), Kind: kindOf(n.Kind())}
	}
}

func snapshotScope(s *object.Scope) Node {
	out := Node{Name: s.Name(), Kind: KindScope}
	if len(s.Children) > 0 {
		out.Children = make([]Node, 0, len(s.Children))
		for _, c := range s.Children {
			out.Children = append(out.Children, Snapshot(c))
		}
	}
	return out
}

func snapshotInstance(i *object.Instance) Node {
	out := Node{Name: i.Name(), Kind: KindInstance}
	if i.Type != nil {
		out.TypeName = i.Type.Name()
	}
	switch i.PayloadKind {
	case object.PayloadString:
		out.PayloadKind = "string"
		out.StringValue = i.StringValue
	case object.PayloadInt:
		out.PayloadKind = "int"
		out.IntValue = i.IntValue
	case object.PayloadFloat:
		out.PayloadKind = "float"
		out.FloatValue = i.FloatValue
	}
	if len(i.SubInstances) > 0 {
		out.Children = make([]Node, 0, len(i.SubInstances))
		for _, sub := range i.SubInstances {
			out.Children = append(out.Children, Snapshot(sub))
		}
	}
	return out
}

// Lookup finds the first direct child of n with the given name, the same
// linear-scan contract as object.Scope.GetByName but over the detached
// snapshot.
func (n Node) Lookup(name string) (Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Node{}, false
}

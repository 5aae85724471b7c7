package object

// Type refines Scope: it is itself a namespace (its children are member
// declarations and member functions/operators) and additionally knows how
// to manufacture a fresh Instance of itself.
type Type struct {
	Scope
	// Factory produces a new Instance of this type. Every type built by
	// NewType, user-defined and intrinsic alike, uses DefaultCreateInstance,
	// which seeds one sub-instance per INSTANCE-kind member; intrinsic types
	// have only operator members, so their instances get no sub-instances
	// and their payload is set afterwards by SetFromString.
	Factory func(t *Type, name string) *Instance
}

// NewType creates a Type with the default instance factory. Set Factory
// directly to install a custom one.
func NewType(name string, parent *Scope) *Type {
	t := &Type{Scope: Scope{Parent: parent}}
	t.name = name
	t.Factory = DefaultCreateInstance
	return t
}

func (t *Type) Kind() Kind { return KindType }

// CreateInstance manufactures a fresh Instance of this type under name.
func (t *Type) CreateInstance(name string) *Instance {
	factory := t.Factory
	if factory == nil {
		factory = DefaultCreateInstance
	}
	return factory(t, name)
}

// DefaultCreateInstance builds a plain Instance and seeds one sub-instance
// per INSTANCE-kind member of the type, each created via that member's own
// type factory (so nested class members get their own default payloads).
func DefaultCreateInstance(t *Type, name string) *Instance {
	inst := NewInstance(t, name)
	for _, c := range t.Children {
		member, ok := c.(*Instance)
		if !ok {
			continue
		}
		inst.AddSubInstance(member.Type.CreateInstance(member.Name()))
	}
	return inst
}

// Clone deep-copies the type: children are cloned recursively and the
// factory pointer is preserved (it never captures scope-specific state).
func (t *Type) Clone(name string) Node {
	clone := NewType(name, t.Parent)
	clone.Factory = t.Factory
	clone.SetSpan(t.Span())
	clone.Children = make([]Node, 0, len(t.Children))
	for _, c := range t.Children {
		clone.AddChild(c.Clone(c.Name()))
	}
	return clone
}

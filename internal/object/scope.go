package object

// Scope is an ordered container of scopeables with an optional parent.
//
// Parent is a non-owning back-reference: parents outlive children and a
// Scope never frees its parent when it is torn down. Children are owned:
// cloning or discarding a Scope recursively clones/discards its children,
// except the shared intrinsic scope, which nothing ever walks into from a
// child's teardown path because nothing here performs manual teardown —
// Go's GC frees unreachable nodes, so "must not traverse into the shared
// intrinsic scope" reduces to "must never reference it from Children".
type Scope struct {
	base
	Parent   *Scope
	Children []Node
}

// NewScope creates an empty scope with the given name and parent. name may
// be empty for anonymous block scopes (`{ ... }`).
func NewScope(name string, parent *Scope) *Scope {
	s := &Scope{Parent: parent}
	s.name = name
	return s
}

func (s *Scope) Kind() Kind { return KindScope }

// GetByName scans own children in insertion order, returning the first
// child whose name matches and whose kind equals filter (KindNone matches
// any kind). If nothing matches and Parent is set, the search continues
// into Parent recursively.
func (s *Scope) GetByName(name string, filter Kind) (Node, bool) {
	for _, c := range s.Children {
		if c.Name() != name {
			continue
		}
		if filter != KindNone && c.Kind() != filter {
			continue
		}
		return c, true
	}
	if s.Parent != nil {
		return s.Parent.GetByName(name, filter)
	}
	return nil, false
}

// AddChild appends to the ordered children list. No dedup, no
// name-uniqueness enforcement — GetByName always returns the first match.
func (s *Scope) AddChild(n Node) {
	s.Children = append(s.Children, n)
}

// Merge implements `self += other`: for each child of other, look up its
// name in self (full recursive GetByName, filter none — this can resolve
// into self's own parent chain, matching the reference implementation).
// If found and both are INSTANCE, assign other's payload into self's
// (AssignFrom). If found and both are SCOPE or TYPE, merge recurses
// structurally. Otherwise the child is cloned into self fresh.
func (s *Scope) Merge(other *Scope) {
	for _, oc := range other.Children {
		existing, found := s.GetByName(oc.Name(), KindNone)
		if !found || existing.Kind() != oc.Kind() || oc.Kind() == KindFunction {
			s.AddChild(oc.Clone(oc.Name()))
			continue
		}
		switch existing.Kind() {
		case KindInstance:
			if oc.Kind() == KindInstance {
				existing.(*Instance).AssignFrom(oc.(*Instance))
			}
		case KindType:
			if oc.Kind() == KindType {
				existing.(*Type).Scope.Merge(&oc.(*Type).Scope)
			}
		case KindScope:
			if oc.Kind() == KindScope {
				existing.(*Scope).Merge(oc.(*Scope))
			}
		}
	}
}

// Clone deep-copies the scope under a new name: every child is cloned
// recursively. The new scope keeps the same Parent reference as the
// original (a clone occupies the same lexical position unless the caller
// reparents it).
func (s *Scope) Clone(name string) Node {
	clone := NewScope(name, s.Parent)
	clone.SetSpan(s.Span())
	clone.Children = make([]Node, 0, len(s.Children))
	for _, c := range s.Children {
		clone.AddChild(c.Clone(c.Name()))
	}
	return clone
}

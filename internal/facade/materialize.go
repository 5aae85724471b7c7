package facade

import (
	"confparser/internal/intrinsic"
	"confparser/internal/object"
)

// Materialize rebuilds a live object tree from a detached snapshot,
// rooted at a fresh scope parented to the shared intrinsic scope — the
// same shape interp.Parser.parseInto builds for a fresh %use/%default
// parse (object.NewScope("", intrinsics.Scope)). This is what lets a
// internal/cache hit feed its stored snapshot into object.Scope.Merge
// exactly as a freshly parsed file's scope would be merged (SPEC_FULL
// §4.9: "a cache hit still merges the cached children into the current
// scope exactly as a fresh parse would").
//
// Function and Operator bodies are not part of a snapshot (Snippet only
// records Priority/Fixity for an Operator's own dispatch, never its
// Callback). A materialized operator takes its callback from the
// same-named operator of the object intrinsic, which is where a class
// type's operators come from, so member access and assignment keep
// working after a cache hit. Any other KindFunction node carries no
// callback; that only affects user-declared extrinsic functions, whose
// body execution is itself a declared non-goal (spec §9).
func Materialize(n Node, intrinsics *intrinsic.Registry) *object.Scope {
	root := object.NewScope(n.Name, intrinsics.Scope)
	populate(&root.Children, n.Children, root, intrinsics)
	return root
}

func populate(into *[]object.Node, children []Node, parent *object.Scope, intrinsics *intrinsic.Registry) {
	for _, c := range children {
		*into = append(*into, materializeNode(c, parent, intrinsics))
	}
}

func materializeNode(n Node, parent *object.Scope, intrinsics *intrinsic.Registry) object.Node {
	switch n.Kind {
	case KindType:
		ty := object.NewType(n.Name, parent)
		populate(&ty.Children, n.Children, &ty.Scope, intrinsics)
		return ty
	case KindInstance:
		return materializeInstance(n, parent, intrinsics)
	case KindFunction:
		return materializeFunction(n, intrinsics)
	default: // KindScope, and anything unrecognized defaults to a plain scope
		s := object.NewScope(n.Name, parent)
		populate(&s.Children, n.Children, s, intrinsics)
		return s
	}
}

// materializeInstance resolves n's type by name against scope (which, via
// Scope.GetByName's parent-chain recursion, also reaches any sibling
// class declared earlier in the same file and finally the shared
// intrinsic types), then copies its payload and recursively materializes
// its sub-instances.
func materializeInstance(n Node, scope *object.Scope, intrinsics *intrinsic.Registry) *object.Instance {
	var ty *object.Type
	if n.TypeName != "" {
		if found, ok := scope.GetByName(n.TypeName, object.KindType); ok {
			ty, _ = found.(*object.Type)
		}
		if ty == nil {
			ty, _ = intrinsics.Type(n.TypeName)
		}
	}
	inst := object.NewInstance(ty, n.Name)
	switch n.PayloadKind {
	case "string":
		inst.PayloadKind = object.PayloadString
		inst.StringValue = n.StringValue
	case "int":
		inst.PayloadKind = object.PayloadInt
		inst.IntValue = n.IntValue
	case "float":
		inst.PayloadKind = object.PayloadFloat
		inst.FloatValue = n.FloatValue
	}
	for _, c := range n.Children {
		if c.Kind != KindInstance {
			continue
		}
		inst.AddSubInstance(materializeInstance(c, scope, intrinsics))
	}
	return inst
}

func materializeFunction(n Node, intrinsics *intrinsic.Registry) object.Node {
	if n.Fixity != "" {
		var cb object.Callback
		if objectType, ok := intrinsics.Type(object.TypeNameObject); ok {
			if found, ok := objectType.GetByName(n.Name, object.KindFunction); ok {
				if builtin, ok := found.(*object.Operator); ok {
					cb = builtin.Callback
				}
			}
		}
		op := object.NewOperator(n.Name, n.Priority, cb)
		op.SetFixity(fixityFromString(n.Fixity))
		return op
	}
	return object.NewIntrinsicFunction(n.Name, nil)
}

func fixityFromString(s string) object.Fixity {
	switch s {
	case "PRE":
		return object.FixityPRE
	case "POST":
		return object.FixityPOST
	case "SUR":
		return object.FixitySUR
	default:
		return object.FixityMID
	}
}

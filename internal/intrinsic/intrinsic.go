// Package intrinsic builds the process-wide intrinsic scope: the string,
// int, float and object types together with their built-in operators
// (=, +, *, +=, .), and the compatibility-scoring registry used to pick a
// literal's type from its syntactic shape.
//
// Grounded on confparser.cpp's GetNewIntrinsicScope (operator wiring and
// priorities) and conftype.cpp's IsExprCompatible (compatibility scores).
package intrinsic

import (
	"strings"
	"sync"
	"unicode"

	"confparser/internal/object"
	"confparser/internal/source"
)

// Compatibility scores, ported verbatim from conftype.cpp's IsExprCompatible.
const (
	scoreIncompatible  = -1
	scoreFloatNoDot    = 500
	scoreExactMatch    = 1000
	scoreObjectrelayed = 1
)

// Registry holds one scope instance per evaluation context — spec §9's
// design notes call for a threadable context record rather than hidden
// global state, so tests can build independent registries.
//
// Type names are interned rather than used as raw map keys: the registry
// is small and fixed, but every %use/%default target re-resolves its
// declared type names against it, so the same five strings
// (string/int/float/object/expr) get looked up repeatedly across every
// parsed file in a project. Interning turns each lookup into an integer
// comparison after the first Intern call, the same tradeoff the teacher
// makes for its own identifier-heavy lookups.
type Registry struct {
	Scope *object.Scope
	names *source.Interner
	types map[source.StringID]*object.Type
}

var (
	sharedOnce sync.Once
	shared     *Registry
)

// Shared returns the process-wide intrinsic scope, building it lazily on
// first use (spec §5: the intrinsic scope is a lazily-constructed,
// read-only-after-construction singleton).
func Shared() *Registry {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}

// New builds a fresh, independent intrinsic registry. Use this in tests
// that must not share state with other tests or with Shared().
func New() *Registry {
	r := &Registry{
		Scope: object.NewScope("", nil),
		names: source.NewInterner(),
		types: make(map[source.StringID]*object.Type),
	}
	r.bootstrap()
	return r
}

func (r *Registry) register(t *object.Type) {
	r.types[r.names.Intern(t.Name())] = t
	r.Scope.AddChild(t)
}

// Type returns the intrinsic type with the given name, if any. Querying
// an unregistered name interns it (so a later registration under the same
// text reuses the ID) without adding a type entry.
func (r *Registry) Type(name string) (*object.Type, bool) {
	t, ok := r.types[r.names.Intern(name)]
	return t, ok
}

// TypeFromExpression returns the intrinsic type with the highest
// IsExprCompatible score for expr, or nil if every type scores -1.
// Ties are broken by registry iteration order over {string, int, float,
// object, expr} as registered in bootstrap, matching spec §8's
// determinism requirement (implementations must document tie order).
func (r *Registry) TypeFromExpression(expr string) *object.Type {
	order := []string{
		object.TypeNameString,
		object.TypeNameInt,
		object.TypeNameFloat,
		object.TypeNameObject,
		object.TypeNameExpr,
	}
	best := scoreIncompatible
	var bestType *object.Type
	for _, name := range order {
		ty, ok := r.Type(name)
		if !ok {
			continue
		}
		score := compatibility(name, expr)
		if score > best {
			best = score
			bestType = ty
		}
	}
	return bestType
}

// InstanceFromExpression creates and initializes an instance from a
// literal's textual form, or nil if no intrinsic type is compatible.
func (r *Registry) InstanceFromExpression(expr, name string) (*object.Instance, error) {
	ty := r.TypeFromExpression(expr)
	if ty == nil {
		return nil, nil
	}
	inst := ty.CreateInstance(name)
	if err := inst.SetFromString(expr); err != nil {
		return nil, err
	}
	return inst, nil
}

// compatibility computes the IsExprCompatible score for typeName against
// expr, per conftype.cpp.
func compatibility(typeName, expr string) int {
	switch typeName {
	case object.TypeNameString:
		if len(expr) >= 2 && strings.HasPrefix(expr, `"`) && strings.HasSuffix(expr, `"`) {
			return scoreExactMatch
		}
		return scoreIncompatible
	case object.TypeNameInt:
		if expr != "" && allOf(expr, func(r rune) bool { return unicode.IsDigit(r) || r == '-' }) {
			return scoreExactMatch
		}
		return scoreIncompatible
	case object.TypeNameFloat:
		isNumeric := expr != "" && allOf(expr, func(r rune) bool {
			return unicode.IsDigit(r) || r == '-' || r == '.'
		})
		if !isNumeric {
			return scoreIncompatible
		}
		if strings.ContainsRune(expr, '.') {
			if len(expr) == 1 {
				return scoreIncompatible // a bare '.' is the member-access operator
			}
			return scoreExactMatch
		}
		return scoreFloatNoDot
	case object.TypeNameObject:
		if compatibility(object.TypeNameString, expr) > 0 ||
			compatibility(object.TypeNameInt, expr) > 0 ||
			compatibility(object.TypeNameFloat, expr) > 0 {
			return scoreObjectrelayed
		}
		return scoreIncompatible
	case object.TypeNameExpr:
		// expr never outcompetes object: conftype.cpp's ConfTypeExpr::
		// IsExprCompatible only returns 1 when the object type is absent
		// from the registry, which cannot happen here.
		return scoreIncompatible
	default:
		return scoreIncompatible
	}
}

func allOf(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

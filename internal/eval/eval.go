// Package eval reduces a paren.Tree against a scope into a single result
// instance. It ports confparser.cpp's operatorParser/threatOp: a
// linearization pass that resolves every token to an instance, operator
// or anonymous literal — folding priority-1 operators inline as it goes,
// since they can retype the left operand before the rest of the line is
// even built — followed by a minimum-priority reduction loop that always
// picks the leftmost operator on ties, giving left-associativity.
package eval

import (
	"fmt"

	"confparser/internal/intrinsic"
	"confparser/internal/object"
	"confparser/internal/paren"
)

// Evaluator reduces expressions against a fixed scope and intrinsic
// registry. It carries no mutable state of its own; every Eval call is
// independent.
type Evaluator struct {
	Scope      *object.Scope
	Intrinsics *intrinsic.Registry
}

// New builds an Evaluator over scope, using the shared intrinsic registry.
func New(scope *object.Scope) *Evaluator {
	return &Evaluator{Scope: scope, Intrinsics: intrinsic.Shared()}
}

// Eval reduces the whole tree rooted at depth 0, slot 0.
func (e *Evaluator) Eval(tree paren.Tree) (*object.Instance, error) {
	return e.evalSlot(tree, 0, 0)
}

func (e *Evaluator) evalSlot(tree paren.Tree, depth, offset int) (*object.Instance, error) {
	slots, ok := tree[depth]
	if !ok || offset >= len(slots) {
		return nil, fmt.Errorf("eval: no such sub-expression at depth %d offset %d", depth, offset)
	}

	var line []object.Node
	for _, tok := range slots[offset] {
		if tok == "" {
			continue
		}
		if idx, isPlaceholder := paren.IsPlaceholder(tok); isPlaceholder {
			sub, err := e.evalSlot(tree, depth+1, idx)
			if err != nil {
				return nil, err
			}
			line = append(line, sub)
			continue
		}

		node, err := e.resolveToken(line, tok)
		if err != nil {
			return nil, err
		}
		line = append(line, node)

		// Priority-1 operators (e.g. member access) can retype the left
		// operand, so they are reduced immediately rather than waiting
		// for the main loop below.
		if len(line) > 2 {
			if op, isOp := line[len(line)-2].(*object.Operator); isOp && op.Priority == 1 {
				line, err = e.reduceAt(line, len(line)-2)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	if len(line) == 0 {
		return nil, fmt.Errorf("eval: empty sub-expression at depth %d offset %d", depth, offset)
	}

	for len(line) > 1 {
		opIdx := -1
		var best *object.Operator
		for i, n := range line {
			op, isOp := n.(*object.Operator)
			if !isOp {
				continue
			}
			if best == nil || op.Priority < best.Priority {
				best = op
				opIdx = i
			}
		}
		if best == nil {
			return nil, fmt.Errorf("eval: line did not reduce to a single value: %d tokens remain", len(line))
		}
		var err error
		line, err = e.reduceAt(line, opIdx)
		if err != nil {
			return nil, err
		}
	}

	result, ok := line[0].(*object.Instance)
	if !ok {
		return nil, fmt.Errorf("eval: expression reduced to a non-instance value")
	}
	return result, nil
}

// resolveToken resolves a single non-placeholder token to a scope
// instance, a freshly-created intrinsic literal, an operator on the
// previous operand, or — failing all of those — an anonymous temporary
// instance carrying the raw token text (the original's "deprecated"
// fallback, kept for line tokens that aren't declared anywhere).
func (e *Evaluator) resolveToken(line []object.Node, tok string) (object.Node, error) {
	if n, ok := e.Scope.GetByName(tok, object.KindInstance); ok {
		return n, nil
	}

	if ty := e.Intrinsics.TypeFromExpression(tok); ty != nil && ty.Name() != object.TypeNameExpr {
		inst := ty.CreateInstance(tok)
		if err := inst.SetFromString(tok); err != nil {
			return nil, fmt.Errorf("eval: literal %q: %w", tok, err)
		}
		inst.SetTemporary(true)
		return inst, nil
	}

	if len(line) > 0 {
		if last, isInstance := line[len(line)-1].(*object.Instance); isInstance {
			if op, ok := last.GetFunction(object.OperatorNamePrefix + tok); ok {
				return op, nil
			}
		}
	}

	raw := object.NewInstance(nil, tok)
	raw.SetTemporary(true)
	return raw, nil
}

// reduceAt applies the operator at line[opIdx] to its neighbors, splicing
// the call result back in. Only MID fixity is implemented; PRE/POST/SUR
// are a declared non-goal (spec: fixity beyond MID is future work).
func (e *Evaluator) reduceAt(line []object.Node, opIdx int) ([]object.Node, error) {
	op, ok := line[opIdx].(*object.Operator)
	if !ok {
		return nil, fmt.Errorf("eval: expected an operator at index %d", opIdx)
	}

	switch op.Fixity {
	case object.FixityMID:
		if opIdx < 1 || opIdx+1 >= len(line) {
			return nil, fmt.Errorf("eval: operator %q has no left/right operand", op.Name())
		}
		left, ok := line[opIdx-1].(*object.Instance)
		if !ok {
			return nil, fmt.Errorf("eval: operator %q left operand is not a value", op.Name())
		}
		right, ok := line[opIdx+1].(*object.Instance)
		if !ok {
			return nil, fmt.Errorf("eval: operator %q right operand is not a value", op.Name())
		}

		result, err := op.Call(left, []*object.Instance{right})
		if err != nil {
			return nil, err
		}
		// No manual release: temporaries are just regular Go values once
		// they drop out of line, garbage collected like anything else.

		next := make([]object.Node, 0, len(line)-2)
		next = append(next, line[:opIdx-1]...)
		next = append(next, result)
		next = append(next, line[opIdx+2:]...)
		return next, nil
	default:
		return nil, fmt.Errorf("eval: fixity %s is not implemented", op.Fixity)
	}
}

// EvalLine is a convenience wrapper tying paren.Parse and Eval together
// for the tokens of a single expression (as produced by lex.Split).
func (e *Evaluator) EvalLine(tokens []string) (*object.Instance, error) {
	return e.Eval(paren.Parse(tokens))
}
